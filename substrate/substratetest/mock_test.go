package substratetest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/commpp"
	"github.com/behrlich/pzgo/substrate"
	"github.com/behrlich/pzgo/substrate/substratetest"
)

func TestMockScriptedGatherFixed(t *testing.T) {
	m := substratetest.New()
	require.NoError(t, m.Init(nil))
	m.GatherFixedResult = []byte("abc")

	c := commpp.NewComm(m, m.WorldComm())
	out, err := c.GatherFixed([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), out)
	require.Equal(t, 1, m.CallCounts()["gather_fixed"])
}

func TestMockScriptedError(t *testing.T) {
	m := substratetest.New()
	require.NoError(t, m.Init(nil))
	m.ReduceErr = errors.New("boom")

	c := commpp.NewComm(m, m.WorldComm())
	_, err := c.Reduce(substrate.Atom(0), substrate.Op(0), 1, []byte{1})
	require.Error(t, err)
}

func TestMockReset(t *testing.T) {
	m := substratetest.New()
	require.NoError(t, m.Init(nil))
	_ = m.Barrier(m.WorldComm())
	require.Equal(t, 1, m.CallCounts()["barrier"])

	m.Reset()
	require.Equal(t, 0, m.CallCounts()["barrier"])
}
