package binary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/binary"
)

type customPoint struct {
	X, Y int
}

func TestNeedsSerializationBuiltins(t *testing.T) {
	require.False(t, binary.NeedsSerialization[string]())
	require.False(t, binary.NeedsSerialization[[]byte]())
	require.False(t, binary.NeedsSerialization[[]float64]())
	require.False(t, binary.NeedsSerialization[binary.Buffer]())
	require.False(t, binary.NeedsSerialization[binary.View]())

	require.True(t, binary.NeedsSerialization[[]string]())
	require.True(t, binary.NeedsSerialization[customPoint]())
}

func TestRegisterSerializableExtendsOpenSet(t *testing.T) {
	require.True(t, binary.NeedsSerialization[[]customPoint]())
	binary.RegisterSerializable[[]customPoint](false)
	t.Cleanup(func() { binary.RegisterSerializable[[]customPoint](true) })
	require.False(t, binary.NeedsSerialization[[]customPoint]())
}

func TestAtomOf(t *testing.T) {
	a, ok := binary.AtomOf[float64]()
	require.True(t, ok)
	require.Equal(t, binary.AtomFloat64, a)

	_, ok = binary.AtomOf[customPoint]()
	require.False(t, ok)
}

func TestReduceOpAtomKnownOps(t *testing.T) {
	_, ok := binary.ReduceOpAtom(binary.OpPlus)
	require.True(t, ok)
}
