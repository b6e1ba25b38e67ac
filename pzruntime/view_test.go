package pzruntime_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/binary"
	"github.com/behrlich/pzgo/commpp"
	"github.com/behrlich/pzgo/pzruntime"
	"github.com/behrlich/pzgo/substrate/localmpi"
)

func TestNewSingleRankView(t *testing.T) {
	v, err := pzruntime.New()
	require.NoError(t, err)
	defer v.Close()

	require.Equal(t, 1, v.Size())
	require.True(t, v.HasMe())

	me := v.MyResourceSet()
	require.True(t, me.IsMine())
	require.Equal(t, 0, me.Rank())

	logger, err := me.ProgressLogger()
	require.NoError(t, err)
	require.Equal(t, "progress", logger.Name())
}

func TestResourceSetAtOutOfRange(t *testing.T) {
	v, err := pzruntime.New()
	require.NoError(t, err)
	defer v.Close()

	_, err = v.At(5)
	require.Error(t, err)
}

func TestRetainCloseRunsFinalizersOnlyOnLastClose(t *testing.T) {
	v, err := pzruntime.New()
	require.NoError(t, err)

	ran := 0
	v.StackCallback(func() { ran++ })

	v2 := v.Retain()
	require.NoError(t, v.Close())
	require.Equal(t, 0, ran, "finalizers must not run while a reference remains")

	require.NoError(t, v2.Close())
	require.Equal(t, 1, ran)
}

func TestNullResourceSetIsEmpty(t *testing.T) {
	require.True(t, pzruntime.Null().Empty())
	_, err := pzruntime.Null().RAM()
	require.Error(t, err)
}

func TestMultiRankViewGatherAndReduce(t *testing.T) {
	subs := localmpi.Sandbox(3)
	views := make([]*pzruntime.View, 3)

	results := localmpi.RunConcurrently(subs, func(rank int, s *localmpi.Substrate) error {
		require.NoError(t, s.Init(nil))
		c := commpp.NewComm(s, s.WorldComm())
		v, err := pzruntime.NewFromComm(c)
		if err != nil {
			return err
		}
		views[rank] = v

		require.Equal(t, 3, v.Size())
		me := v.MyResourceSet()
		require.True(t, me.HasRAM())

		reduced, err := pzruntime.Reduce(v, int64(rank+1), binary.OpPlus)
		if err != nil {
			return err
		}
		require.True(t, reduced.Present)
		require.Equal(t, int64(6), reduced.Value)
		return nil
	})
	for _, err := range results {
		require.NoError(t, err)
	}
	for _, v := range views {
		require.NoError(t, v.Close())
	}
}

func TestLocalPeersIncludesEveryRank(t *testing.T) {
	v, err := pzruntime.New()
	require.NoError(t, err)
	defer v.Close()

	require.Equal(t, []int{0}, v.LocalPeers())
}

func TestResourceSetEqual(t *testing.T) {
	v, err := pzruntime.New()
	require.NoError(t, err)
	defer v.Close()

	require.True(t, pzruntime.Null().Equal(pzruntime.Null()))
	require.False(t, pzruntime.Null().Equal(v.MyResourceSet()))
	require.True(t, v.MyResourceSet().Equal(v.MyResourceSet()))

	other, err := pzruntime.New()
	require.NoError(t, err)
	defer other.Close()
	require.False(t, v.MyResourceSet().Equal(other.MyResourceSet()))
}

func TestViewEqual(t *testing.T) {
	v, err := pzruntime.New()
	require.NoError(t, err)
	defer v.Close()

	require.True(t, v.Equal(v))
	require.True(t, (*pzruntime.View)(nil).Equal(nil))
	require.False(t, v.Equal(nil))

	v2 := v.Retain()
	defer v2.Close()
	require.True(t, v.Equal(v2))

	other, err := pzruntime.New()
	require.NoError(t, err)
	defer other.Close()
	require.False(t, v.Equal(other))
}
