package profiler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/profiler"
	"github.com/behrlich/pzgo/profiler/energy"
	"github.com/behrlich/pzgo/task"
)

func TestRunAccumulatesWallTime(t *testing.T) {
	p := profiler.New(nil)

	tk, _ := task.Make(func() int { return 42 })
	res, sample, err := p.Run(tk)
	require.NoError(t, err)
	require.Equal(t, 42, res.Value())
	require.Zero(t, sample.Joules)

	snap := p.Snapshot()
	require.Equal(t, uint64(1), snap.Count)
}

func TestRunPropagatesTaskError(t *testing.T) {
	p := profiler.New(nil)
	tk, _ := task.Make(func() int { return 1 })
	_, _, err := p.Run(tk)
	require.NoError(t, err)

	_, _, err = p.Run(tk)
	require.ErrorIs(t, err, task.ErrTaskConsumed)
}

type fakeMonitor struct{ joules float64 }

func (f *fakeMonitor) Start() error          { return nil }
func (f *fakeMonitor) Stop() (float64, error) { return f.joules, nil }

func TestRunRecordsEnergyWhenMonitored(t *testing.T) {
	p := profiler.New(&fakeMonitor{joules: 2.5})
	tk, _ := task.Make(func() {})

	_, sample, err := p.Run(tk)
	require.NoError(t, err)
	require.Equal(t, 2.5, sample.Joules)
	require.Equal(t, 2.5, p.Snapshot().TotalJoules)
}

type failingMonitor struct{}

func (failingMonitor) Start() error          { return errors.New("no energy backend") }
func (failingMonitor) Stop() (float64, error) { return 0, nil }

func TestRunFallsBackWhenMonitorFailsToStart(t *testing.T) {
	p := profiler.New(failingMonitor{})
	tk, _ := task.Make(func() int { return 7 })

	res, sample, err := p.Run(tk)
	require.NoError(t, err)
	require.Equal(t, 7, res.Value())
	require.Zero(t, sample.Joules)
}

var _ energy.Monitor = (*fakeMonitor)(nil)
