// Package substrate defines the message-passing collaborator the core
// assumes (spec §1 Non-goals, §6 External Interfaces): an opaque
// communicator handle over a fixed process group, with point-to-point-free
// collective primitives (fixed gather, variable-count gather, reduce) and a
// byte atom for already-serialized payloads. The core never implements a
// transport itself; it is built entirely against this interface.
package substrate

import "github.com/behrlich/pzgo/binary"

// Atom and Op are re-exported from binary so callers of this package don't
// need to import binary directly just to name a reduction operator.
type Atom = binary.Atom
type Op = binary.ReduceOp

// RankNone is the sentinel rank for a process with no assigned rank in a
// communicator (the null communicator, or a rank that asked "am I in this
// group" and isn't).
const RankNone = -1

// RootAll is passed as the root argument to a collective to request the
// all-variant (every rank receives the result) rather than a rooted
// variant (only the named rank does).
const RootAll = -1

// Comm is an opaque handle naming a fixed process group. The zero value is
// the null handle (Size() == 0, rank == RankNone). Equality is defined by
// Substrate.CommCompare, not by comparing Comm values directly, since two
// handles can name the same group through different implementation-level
// payloads.
type Comm struct {
	impl any
}

// NewComm wraps an implementation-specific payload in a Comm. Substrate
// implementations are expected to type-assert Impl() back to their own
// concrete type.
func NewComm(impl any) Comm { return Comm{impl: impl} }

// Impl returns the implementation-specific payload, or nil for the null
// handle.
func (c Comm) Impl() any { return c.impl }

// IsNull reports whether this is the null communicator handle.
func (c Comm) IsNull() bool { return c.impl == nil }

// Substrate is the message-passing collaborator. All methods operate on a
// Comm previously returned by this same Substrate instance (or a sibling
// instance sharing the same underlying group, for multi-rank sandboxes);
// passing a Comm produced by a different Substrate implementation is
// undefined.
type Substrate interface {
	// Init brings the substrate up if it is not already initialized.
	Init(args []string) error
	// Finalize tears the substrate down. Safe to call only once, and only
	// by whichever caller claimed ownership at Init time.
	Finalize() error
	// Initialized reports whether the substrate is currently up.
	Initialized() bool

	// WorldComm returns the handle naming every participating process.
	WorldComm() Comm
	// NullComm returns the null handle.
	NullComm() Comm

	// CommSize returns the number of ranks in c (0 for the null handle).
	CommSize(c Comm) int
	// CommRank returns this process's rank within c, or RankNone.
	CommRank(c Comm) int
	// CommCompare reports whether a and b name the same process group.
	CommCompare(a, b Comm) bool

	// GatherFixed gathers a uniform-size byte chunk from every rank in c.
	// root == RootAll requests the all-gather variant; any other value
	// requests a rooted gather, and the return value is meaningful only on
	// that rank.
	GatherFixed(c Comm, root int, local []byte) ([]byte, error)

	// GatherV gathers a possibly-different-size byte chunk from every rank
	// in c, returning the rank-ordered concatenation and the per-rank
	// sizes that produced it. root == RootAll requests the all-gather
	// variant.
	GatherV(c Comm, root int, local []byte) (data []byte, sizes []int, err error)

	// Reduce combines one chunk of count elements of the given atom type
	// from every rank in c using op, returning the combined chunk. Returns
	// (nil, ErrUnsupportedReduce) if this substrate has no native
	// implementation for (atom, op); callers are expected to fall back to
	// gather-then-fold (spec §4.5 Algorithm, reduction paragraph).
	// root == RootAll requests the all-reduce variant.
	Reduce(c Comm, root int, atom Atom, op Op, count int, local []byte) ([]byte, error)

	// Barrier blocks until every rank in c has called Barrier.
	Barrier(c Comm) error
}
