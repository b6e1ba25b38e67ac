// Package commpp is the thin, reference-semantics façade over a raw
// substrate.Comm handle (spec §4.4): it caches size/rank at construction
// and exposes the binary gather/gatherv primitives the typed-collective
// layer builds on.
package commpp

import (
	"fmt"

	"github.com/behrlich/pzgo/substrate"
)

// Comm wraps a substrate.Comm with its cached size and rank. Wrapping the
// null handle yields size 0 and rank substrate.RankNone.
type Comm struct {
	sub  substrate.Substrate
	comm substrate.Comm
	size int
	me   int
}

// NewComm wraps a live or null handle, querying size/rank once.
func NewComm(sub substrate.Substrate, c substrate.Comm) Comm {
	return Comm{
		sub:  sub,
		comm: c,
		size: sub.CommSize(c),
		me:   sub.CommRank(c),
	}
}

// Size returns the number of ranks in this communicator (0 for null).
func (c Comm) Size() int { return c.size }

// Me returns this process's rank, or substrate.RankNone.
func (c Comm) Me() int { return c.me }

// Handle returns the underlying substrate handle.
func (c Comm) Handle() substrate.Comm { return c.comm }

// Substrate returns the substrate implementation backing this façade.
func (c Comm) Substrate() substrate.Substrate { return c.sub }

// Equal reports whether two façades name the same process group, per the
// substrate's own group-comparison operation.
func (c Comm) Equal(o Comm) bool {
	if c.sub == nil || o.sub == nil {
		return c.sub == nil && o.sub == nil && c.comm.IsNull() && o.comm.IsNull()
	}
	return c.sub.CommCompare(c.comm, o.comm)
}

// rootArg translates an optional root rank into the substrate's RootAll
// sentinel.
func rootArg(root []int) (int, error) {
	switch len(root) {
	case 0:
		return substrate.RootAll, nil
	case 1:
		return root[0], nil
	default:
		return 0, fmt.Errorf("commpp: at most one root rank may be given, got %d", len(root))
	}
}

// GatherFixed gathers n bytes per rank (local's length) into a single
// rank-ordered concatenation. root omitted requests the all-gather
// variant; root given requests a rooted gather whose result is meaningful
// only on that rank.
func (c Comm) GatherFixed(local []byte, root ...int) ([]byte, error) {
	r, err := rootArg(root)
	if err != nil {
		return nil, err
	}
	out, err := c.sub.GatherFixed(c.comm, r, local)
	if err != nil {
		return nil, fmt.Errorf("commpp: gather: %w", err)
	}
	return out, nil
}

// GatherFixedInto is the explicit-output-view overload: it writes directly
// into out rather than allocating, failing loudly if out is undersized on
// a rank that is meant to receive data (spec §4.4, §7 item 2).
func (c Comm) GatherFixedInto(local []byte, out []byte, root ...int) error {
	r, err := rootArg(root)
	if err != nil {
		return err
	}
	receives := r == substrate.RootAll || r == c.me
	needed := len(local) * c.size
	if receives && len(out) < needed {
		return fmt.Errorf("commpp: gather output buffer has %d bytes, need %d: %w", len(out), needed, substrate.ErrShortBuffer)
	}
	data, err := c.sub.GatherFixed(c.comm, r, local)
	if err != nil {
		return fmt.Errorf("commpp: gather: %w", err)
	}
	if receives {
		copy(out, data)
	}
	return nil
}

// GatherV gathers a possibly different-length chunk per rank, returning
// the rank-ordered concatenation and the per-rank sizes that produced it.
func (c Comm) GatherV(local []byte, root ...int) (data []byte, sizes []int, err error) {
	r, err := rootArg(root)
	if err != nil {
		return nil, nil, err
	}
	data, sizes, err = c.sub.GatherV(c.comm, r, local)
	if err != nil {
		return nil, nil, fmt.Errorf("commpp: gatherv: %w", err)
	}
	return data, sizes, nil
}

// Reduce combines count elements of atom type from every rank using op. It
// returns substrate.ErrUnsupportedReduce (wrapped) when the substrate has
// no native mapping, so the typed-collective layer can fall back.
func (c Comm) Reduce(atom substrate.Atom, op substrate.Op, count int, local []byte, root ...int) ([]byte, error) {
	r, err := rootArg(root)
	if err != nil {
		return nil, err
	}
	return c.sub.Reduce(c.comm, r, atom, op, count, local)
}

// Barrier blocks until every rank in this communicator has called it.
func (c Comm) Barrier() error {
	return c.sub.Barrier(c.comm)
}
