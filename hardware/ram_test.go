package hardware_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/binary"
	"github.com/behrlich/pzgo/commpp"
	"github.com/behrlich/pzgo/hardware"
	"github.com/behrlich/pzgo/substrate/localmpi"
)

func TestRAMEmpty(t *testing.T) {
	require.True(t, hardware.RAM{}.Empty())

	sub := localmpi.New()
	require.NoError(t, sub.Init(nil))
	c := commpp.NewComm(sub, sub.WorldComm())
	require.False(t, hardware.NewRAM(1<<20, 0, c).Empty())
}

func TestRAMEqual(t *testing.T) {
	sub := localmpi.New()
	require.NoError(t, sub.Init(nil))
	c := commpp.NewComm(sub, sub.WorldComm())

	a := hardware.NewRAM(1024, 0, c)
	b := hardware.NewRAM(1024, 0, c)
	diffSize := hardware.NewRAM(2048, 0, c)
	diffOwner := hardware.NewRAM(1024, 1, c)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(diffSize))
	require.False(t, a.Equal(diffOwner))
	require.True(t, hardware.RAM{}.Equal(hardware.RAM{}))
	require.False(t, a.Equal(hardware.RAM{}))
}

func TestGatherOnAndReduceOn(t *testing.T) {
	subs := localmpi.Sandbox(3)
	comms := make([]commpp.Comm, 3)
	rams := make([]hardware.RAM, 3)
	for i, s := range subs {
		require.NoError(t, s.Init(nil))
		comms[i] = commpp.NewComm(s, s.WorldComm())
		rams[i] = hardware.NewRAM(uint64(i+1)<<30, i, comms[i])
	}

	results := localmpi.RunConcurrently(subs, func(rank int, _ *localmpi.Substrate) error {
		gathered, err := hardware.GatherOn(rams[rank], rams[rank].TotalBytes())
		if err != nil {
			return err
		}
		require.Equal(t, []uint64{1 << 30, 2 << 30, 3 << 30}, gathered.Value)

		reduced, err := hardware.ReduceOn(rams[rank], rams[rank].TotalBytes(), binary.OpPlus)
		if err != nil {
			return err
		}
		require.Equal(t, uint64(6<<30), reduced.Value)
		return nil
	})
	for _, err := range results {
		require.NoError(t, err)
	}
}
