// Package binary provides the owning/non-owning byte buffer primitives
// that every collective call in pzgo passes data through, plus the
// serialization-trait tables that decide whether a value needs to be
// encoded before it can travel as bytes.
package binary

import (
	"bytes"
)

// Buffer is an owning, fixed-size, contiguous sequence of bytes. The zero
// value is a valid empty buffer.
//
// Invariant: Size() == 0 iff the buffer holds no backing array.
type Buffer struct {
	data []byte
}

// NewBuffer takes ownership of data directly (no copy). Use Clone if the
// caller needs to retain its own copy of data.
func NewBuffer(data []byte) Buffer {
	if len(data) == 0 {
		return Buffer{}
	}
	return Buffer{data: data}
}

// FromBytes copies src into a new owning Buffer.
func FromBytes(src []byte) Buffer {
	if len(src) == 0 {
		return Buffer{}
	}
	cp := make([]byte, len(src))
	copy(cp, src)
	return Buffer{data: cp}
}

// Size returns the number of bytes held.
func (b Buffer) Size() int { return len(b.data) }

// Data returns the raw backing slice. Callers must not retain it across a
// Take() or mutate it unless they own the buffer exclusively.
func (b Buffer) Data() []byte { return b.data }

// Clone performs a deep copy.
func (b Buffer) Clone() Buffer {
	return FromBytes(b.data)
}

// Take steals the backing array, leaving b empty. This is the Go analogue
// of the C++ move constructor's pointer steal.
func (b *Buffer) Take() []byte {
	d := b.data
	b.data = nil
	return d
}

// Swap exchanges backing storage between two buffers.
func (b *Buffer) Swap(other *Buffer) {
	b.data, other.data = other.data, b.data
}

// Equal reports byte-for-byte equality.
func (b Buffer) Equal(other Buffer) bool {
	return bytes.Equal(b.data, other.data)
}

// View returns a read-write View aliasing this buffer's storage.
func (b Buffer) View() View { return View{data: b.data} }

// ReadView returns a read-only View aliasing this buffer's storage.
func (b Buffer) ReadView() ReadView { return ReadView{data: b.data} }

// Iter returns the half-open byte range [0, Size()). Iterating an empty
// buffer yields no elements.
func (b Buffer) Iter() []byte { return b.data }

// View is a non-owning, read-write (pointer, length) pair aliasing some
// external storage.
type View struct {
	data []byte
}

// NewView constructs a View aliasing data. Go slices have no "nil pointer,
// nonzero length" state the way a C++ (pointer, length) pair does, so there
// is no invalid input to reject here; a nil/empty slice simply yields the
// null view.
func NewView(data []byte) View {
	return View{data: data}
}

// Size returns the number of bytes aliased.
func (v View) Size() int { return len(v.data) }

// Bytes returns the aliased slice.
func (v View) Bytes() []byte { return v.data }

// ReadOnly widens this View into a ReadView (implicit in the source; an
// explicit conversion in Go since the language has no const overloads).
func (v View) ReadOnly() ReadView { return ReadView{data: v.data} }

// ReadView is the read-only counterpart of View.
type ReadView struct {
	data []byte
}

// NewReadView constructs a read-only View aliasing data (see NewView).
func NewReadView(data []byte) ReadView {
	return ReadView{data: data}
}

// Size returns the number of bytes aliased.
func (v ReadView) Size() int { return len(v.data) }

// Bytes returns the aliased slice. Callers must not mutate it; Go has no
// way to enforce this at the type level for a byte slice, so ReadView
// exists purely as a documented contract, matching the spec's "read-only
// variant" distinction.
func (v ReadView) Bytes() []byte { return v.data }
