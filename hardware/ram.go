// Package hardware is the RAM resource descriptor (spec §4.6 / C6): one
// rank's advertised memory budget plus the communicator its owner is
// reachable through, so a RAM value can be gathered or reduced across the
// view exactly like any other typed payload.
package hardware

import (
	"github.com/behrlich/pzgo/binary"
	"github.com/behrlich/pzgo/collective"
	"github.com/behrlich/pzgo/commpp"
)

// RAM describes one resource's memory allocation. The zero value is
// Empty(): no bytes, no owner, no communicator.
type RAM struct {
	totalBytes uint64
	owner      int
	comm       commpp.Comm
}

// NewRAM builds a RAM descriptor for owner within c.
func NewRAM(totalBytes uint64, owner int, c commpp.Comm) RAM {
	return RAM{totalBytes: totalBytes, owner: owner, comm: c}
}

// TotalBytes returns the advertised memory budget.
func (r RAM) TotalBytes() uint64 { return r.totalBytes }

// Owner returns the rank this RAM belongs to.
func (r RAM) Owner() int { return r.owner }

// Comm returns the communicator r's owner is reachable through.
func (r RAM) Comm() commpp.Comm { return r.comm }

// Empty reports whether this is the zero-value/unconfigured descriptor.
func (r RAM) Empty() bool { return r.totalBytes == 0 && r.comm.Handle().IsNull() }

// Equal reports whether two RAM descriptors represent the same physical
// budget: both empty, or both non-empty with identical total size, owner,
// and communicator.
func (r RAM) Equal(o RAM) bool {
	if r.Empty() || o.Empty() {
		return r.Empty() && o.Empty()
	}
	return r.totalBytes == o.totalBytes && r.owner == o.owner && r.comm.Equal(o.comm)
}

// GatherOn gathers one T value per rank in r's communicator. Go generics
// cannot attach a type parameter to a method, so this is a free function
// taking the RAM receiver as its first argument instead of r.Gather[T](x)
// (documented in DESIGN.md).
func GatherOn[T any](r RAM, x T, root ...int) (collective.Gathered[[]T], error) {
	return collective.Gather(r.comm, x, root...)
}

// ReduceOn is GatherOn's reduction counterpart.
func ReduceOn[T any](r RAM, x T, op binary.ReduceOp, root ...int) (collective.Gathered[T], error) {
	return collective.Reduce(r.comm, x, op, root...)
}
