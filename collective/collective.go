// Package collective implements the typed collectives (spec §4.5): gather,
// gatherv, and reduce, layered on top of commpp's binary primitives with
// the serialize-or-not decision from the binary package's trait tables.
package collective

import (
	"fmt"

	"github.com/behrlich/pzgo/binary"
	"github.com/behrlich/pzgo/commpp"
)

// Gathered is the Go analogue of the spec's optional<vector<T>> /
// optional<T>: Present is false exactly on non-root ranks of a rooted
// collective.
type Gathered[T any] struct {
	Present bool
	Value   T
}

func present[T any](v T) Gathered[T] { return Gathered[T]{Present: true, Value: v} }
func absent[T any]() Gathered[T]     { return Gathered[T]{} }

// Gather gathers one T value from every rank, returning one entry per rank
// in ascending rank order. This is the general path of spec §4.5: T is
// serialized (or raw-encoded) independently on every rank and the result
// is always a sequence of per-rank values, regardless of whether T itself
// needs serialization.
func Gather[T any](c commpp.Comm, x T, root ...int) (Gathered[[]T], error) {
	return gatherSeq(c, x, root, false)
}

// GatherV is identical to Gather for this always-serialize-per-rank path;
// it is named separately to mirror the spec's public surface, since at the
// substrate level both route through a variable-count gather (per-rank
// encoded length need not match across ranks).
func GatherV[T any](c commpp.Comm, x T, root ...int) (Gathered[[]T], error) {
	return gatherSeq(c, x, root, false)
}

func gatherSeq[T any](c commpp.Comm, x T, root []int, _ bool) (Gathered[[]T], error) {
	buf, err := binary.MakeBuffer(x)
	if err != nil {
		return Gathered[[]T]{}, fmt.Errorf("collective: encode: %w", err)
	}
	data, sizes, err := c.GatherV(buf.Data(), root...)
	if err != nil {
		return Gathered[[]T]{}, err
	}
	if data == nil && sizes == nil {
		return absent[[]T](), nil
	}
	out := make([]T, len(sizes))
	offset := 0
	for i, sz := range sizes {
		v, err := binary.FromBuffer[T](binary.FromBytes(data[offset : offset+sz]))
		if err != nil {
			return Gathered[[]T]{}, fmt.Errorf("collective: decode rank %d: %w", i, err)
		}
		out[i] = v
		offset += sz
	}
	return present(out), nil
}

// GatherFlat is the zero-copy fast path: E must be a fixed-width element
// type (NeedsSerialization[[]E]() is false), and x must have the same
// length on every participating rank. The result is the flattened,
// rank-ordered concatenation (length size*len(x)), with no per-element
// deserialize step.
func GatherFlat[E any](c commpp.Comm, x []E, root ...int) (Gathered[[]E], error) {
	if binary.NeedsSerialization[[]E]() {
		return Gathered[[]E]{}, fmt.Errorf("collective: GatherFlat requires a fixed-width element type")
	}
	buf, err := binary.MakeBuffer(x)
	if err != nil {
		return Gathered[[]E]{}, err
	}
	raw, err := c.GatherFixed(buf.Data(), root...)
	if err != nil {
		return Gathered[[]E]{}, err
	}
	if raw == nil {
		return absent[[]E](), nil
	}
	out, err := binary.FromBuffer[[]E](binary.FromBytes(raw))
	if err != nil {
		return Gathered[[]E]{}, err
	}
	return present(out), nil
}

// GatherVFlat is GatherFlat's variable-length counterpart: each rank's x
// may have a different length; the result is still the flattened
// concatenation (no per-rank boundary information is kept, since E is
// fixed-width and boundaries can be recovered from the per-rank sizes if
// the caller also gathers len(x) separately).
func GatherVFlat[E any](c commpp.Comm, x []E, root ...int) (Gathered[[]E], error) {
	if binary.NeedsSerialization[[]E]() {
		return Gathered[[]E]{}, fmt.Errorf("collective: GatherVFlat requires a fixed-width element type")
	}
	buf, err := binary.MakeBuffer(x)
	if err != nil {
		return Gathered[[]E]{}, err
	}
	data, sizes, err := c.GatherV(buf.Data(), root...)
	if err != nil {
		return Gathered[[]E]{}, err
	}
	if data == nil && sizes == nil {
		return absent[[]E](), nil
	}
	out, err := binary.FromBuffer[[]E](binary.FromBytes(data))
	if err != nil {
		return Gathered[[]E]{}, err
	}
	return present(out), nil
}
