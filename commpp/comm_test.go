package commpp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/commpp"
	"github.com/behrlich/pzgo/substrate"
	"github.com/behrlich/pzgo/substrate/localmpi"
)

func TestCommEqualAndBounds(t *testing.T) {
	sub := localmpi.New()
	require.NoError(t, sub.Init(nil))
	c := commpp.NewComm(sub, sub.WorldComm())

	require.True(t, c.Equal(c))
	require.GreaterOrEqual(t, c.Size(), 1)
	require.GreaterOrEqual(t, c.Me(), 0)
	require.Less(t, c.Me(), c.Size())
}

func TestGatherFixedRootedAndAll(t *testing.T) {
	subs := localmpi.Sandbox(3)
	comms := make([]commpp.Comm, 3)
	for i, s := range subs {
		require.NoError(t, s.Init(nil))
		comms[i] = commpp.NewComm(s, s.WorldComm())
	}

	results := localmpi.RunConcurrently(subs, func(rank int, s *localmpi.Substrate) error {
		local := []byte{byte('a' + rank)}
		out, err := comms[rank].GatherFixed(local, 0)
		if err != nil {
			return err
		}
		if rank == 0 {
			if string(out) != "abc" {
				t.Errorf("rank 0 got %q, want abc", out)
			}
		} else if out != nil {
			t.Errorf("rank %d expected nil on a rooted gather, got %q", rank, out)
		}
		return nil
	})
	for _, err := range results {
		require.NoError(t, err)
	}
}

func TestGatherFixedIntoShortBufferFailsLoudly(t *testing.T) {
	sub := localmpi.New()
	require.NoError(t, sub.Init(nil))
	c := commpp.NewComm(sub, sub.WorldComm())

	err := c.GatherFixedInto([]byte{1, 2, 3}, make([]byte, 1))
	require.ErrorIs(t, err, substrate.ErrShortBuffer)
}

func TestGatherVAllVariant(t *testing.T) {
	subs := localmpi.Sandbox(3)
	comms := make([]commpp.Comm, 3)
	for i, s := range subs {
		require.NoError(t, s.Init(nil))
		comms[i] = commpp.NewComm(s, s.WorldComm())
	}
	payloads := [][]byte{[]byte("Hi"), []byte("Hello World"), []byte("X Y Z")}

	results := localmpi.RunConcurrently(subs, func(rank int, s *localmpi.Substrate) error {
		data, sizes, err := comms[rank].GatherV(payloads[rank])
		if err != nil {
			return err
		}
		require.Equal(t, "HiHello WorldX Y Z", string(data))
		require.Equal(t, []int{2, 11, 5}, sizes)
		return nil
	})
	for _, err := range results {
		require.NoError(t, err)
	}
}
