package task

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
)

// ErrTaskConsumed is returned by Run when a Task has already been invoked.
// The spec leaves double-invocation unchecked at the C++ layer; pzgo
// strengthens that into a reported error instead, since Go has no
// move-only type system to make a second call a compile error (see
// DESIGN.md).
var ErrTaskConsumed = errors.New("task: already run")

// Result is the opaque value-carrier a Task's invocation returns. It holds
// no value (Empty() is true) when the wrapped callable returns nothing.
type Result struct {
	val any
	has bool
}

// Empty reports whether the callable returned nothing (void).
func (r Result) Empty() bool { return !r.has }

// Value returns the carried value, or nil if Empty.
func (r Result) Value() any { return r.val }

// Unwrapper recovers the carried value from a Result as an any (nil for a
// void callable); Unwrap[R] adds the assertion to the callable's return
// type.
type Unwrapper func(Result) (any, error)

// Task is a type-erased, single-shot, zero-argument callable. Tasks are
// move-only by convention: share them by pointer, never by value, and call
// Run at most once.
type Task struct {
	consumed atomic.Bool
	run      func() Result
}

// Run invokes the wrapped callable. A second call returns ErrTaskConsumed
// without re-invoking the callable.
func (t *Task) Run() (Result, error) {
	if t.consumed.Swap(true) {
		return Result{}, ErrTaskConsumed
	}
	return t.run(), nil
}

// Make binds fn and args into a Task plus a companion Unwrapper. args are
// captured immediately (matching the spec's "tuple of argument wrappers"
// bound at construction time) using the same pass-by-value-or-pointer rule
// as Arg: a slice or pointer argument shares the caller's backing storage,
// so Run observes in-place mutations the same way the C++ argument wrapper
// does for reference-category parameters.
//
// fn must be a function; it may take any number of arguments matching args
// in count and assignability, and may return zero or one values.
func Make(fn any, args ...any) (*Task, Unwrapper) {
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		panic("task: Make requires a function value")
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(ft.In(i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}

	run := func() Result {
		out := fv.Call(in)
		if len(out) == 0 {
			return Result{}
		}
		return Result{val: out[0].Interface(), has: true}
	}

	t := &Task{run: run}
	unwrap := func(r Result) (any, error) {
		if r.Empty() {
			return nil, nil
		}
		return r.Value(), nil
	}
	return t, unwrap
}

// Unwrap applies an Unwrapper and asserts the recovered value is of type R,
// the Go stand-in for the spec's "unwrapper typed on the return".
func Unwrap[R any](u Unwrapper, r Result) (R, error) {
	var zero R
	v, err := u(r)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(R)
	if !ok {
		return zero, fmt.Errorf("task: result is %T, not %T", v, zero)
	}
	return out, nil
}
