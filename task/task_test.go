package task_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/task"
)

// Scenario 5: task wrapper preserves move into callee — the returned
// vector's storage pointer equals v's original storage.
func TestTaskPreservesSliceStorage(t *testing.T) {
	v := []int{1, 2, 3}
	identity := func(w []int) []int { return w }

	tsk, unwrap := task.Make(identity, v)
	res, err := tsk.Run()
	require.NoError(t, err)

	out, err := task.Unwrap[[]int](unwrap, res)
	require.NoError(t, err)
	require.Equal(t, v, out)
	require.Same(t, &v[0], &out[0], "expected no extra copy of the backing array")
}

func TestTaskVoidReturnYieldsEmptyResult(t *testing.T) {
	called := false
	fn := func() { called = true }

	tsk, unwrap := task.Make(fn)
	res, err := tsk.Run()
	require.NoError(t, err)
	require.True(t, called)
	require.True(t, res.Empty())

	_, err = unwrap(res)
	require.NoError(t, err)
}

func TestTaskIsSingleShot(t *testing.T) {
	tsk, _ := task.Make(func() int { return 42 })
	_, err := tsk.Run()
	require.NoError(t, err)

	_, err = tsk.Run()
	require.ErrorIs(t, err, task.ErrTaskConsumed)
}

func TestArgByValueVsByRef(t *testing.T) {
	x := 10
	valArg := task.ByValue(x)
	refArg := task.ByRef(&x)

	x = 20
	require.Equal(t, 10, *valArg.Value(), "by-value capture should not see later mutation")
	require.Equal(t, 20, *refArg.Value(), "by-ref capture should observe the caller's storage")
	require.Equal(t, &x, refArg.Value())
}
