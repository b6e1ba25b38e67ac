// Package localmpi implements an in-process Substrate (spec §6) by running
// each rank as a goroutine sharing one world rendezvous point instead of a
// real message-passing network. It exists for single-binary testing and
// for embedding a small multi-rank sandbox in one process; a production
// deployment is expected to supply its own Substrate backed by a real MPI
// binding (out of scope here per spec §1).
package localmpi

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/behrlich/pzgo/substrate"
)

// Substrate is one rank's view of an in-process group.
type Substrate struct {
	rank        int
	world       *world
	initialized atomic.Bool
}

// New returns a single-rank (size 1) substrate, the degenerate case used
// by pzruntime.New() when no multi-rank sandbox is requested — equivalent
// to running a real MPI program with -np 1.
func New() *Substrate {
	return &Substrate{rank: 0, world: newWorld(1)}
}

// Sandbox returns n Substrate instances sharing one in-process group, one
// per simulated rank. Callers typically hand one instance to each of n
// goroutines, each of which builds its own pzruntime.View from it.
func Sandbox(n int) []*Substrate {
	if n <= 0 {
		panic("localmpi: Sandbox requires n >= 1")
	}
	w := newWorld(n)
	out := make([]*Substrate, n)
	for i := 0; i < n; i++ {
		out[i] = &Substrate{rank: i, world: w}
	}
	return out
}

func (s *Substrate) Init(args []string) error {
	s.initialized.Store(true)
	return nil
}

func (s *Substrate) Finalize() error {
	s.initialized.Store(false)
	return nil
}

func (s *Substrate) Initialized() bool { return s.initialized.Load() }

func (s *Substrate) WorldComm() substrate.Comm { return substrate.NewComm(s.world) }

func (s *Substrate) NullComm() substrate.Comm { return substrate.Comm{} }

func (s *Substrate) CommSize(c substrate.Comm) int {
	w, ok := c.Impl().(*world)
	if !ok || w == nil {
		return 0
	}
	return w.size
}

func (s *Substrate) CommRank(c substrate.Comm) int {
	w, ok := c.Impl().(*world)
	if !ok || w == nil || w != s.world {
		return substrate.RankNone
	}
	return s.rank
}

func (s *Substrate) CommCompare(a, b substrate.Comm) bool {
	wa, _ := a.Impl().(*world)
	wb, _ := b.Impl().(*world)
	return wa == wb
}

func (s *Substrate) GatherFixed(c substrate.Comm, root int, local []byte) ([]byte, error) {
	w, err := s.worldOf(c)
	if err != nil {
		return nil, err
	}
	cp := append([]byte(nil), local...)
	res := w.rendezvous(s.rank, cp, func(contribs []any) any {
		out := make([]byte, 0, len(contribs)*len(cp))
		for _, ci := range contribs {
			out = append(out, ci.([]byte)...)
		}
		return out
	})
	if root != substrate.RootAll && root != s.rank {
		return nil, nil
	}
	return res.([]byte), nil
}

type gatherVResult struct {
	data  []byte
	sizes []int
}

func (s *Substrate) GatherV(c substrate.Comm, root int, local []byte) ([]byte, []int, error) {
	w, err := s.worldOf(c)
	if err != nil {
		return nil, nil, err
	}
	cp := append([]byte(nil), local...)
	res := w.rendezvous(s.rank, cp, func(contribs []any) any {
		sizes := make([]int, len(contribs))
		total := 0
		for i, ci := range contribs {
			sizes[i] = len(ci.([]byte))
			total += sizes[i]
		}
		data := make([]byte, 0, total)
		for _, ci := range contribs {
			data = append(data, ci.([]byte)...)
		}
		return gatherVResult{data: data, sizes: sizes}
	})
	gv := res.(gatherVResult)
	if root != substrate.RootAll && root != s.rank {
		return nil, nil, nil
	}
	return gv.data, gv.sizes, nil
}

func (s *Substrate) Reduce(c substrate.Comm, root int, atom substrate.Atom, op substrate.Op, count int, local []byte) ([]byte, error) {
	w, err := s.worldOf(c)
	if err != nil {
		return nil, err
	}
	vals, err := decodeFloat64s(atom, count, local)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", substrate.ErrUnsupportedReduce, err)
	}
	res := w.rendezvous(s.rank, vals, func(contribs []any) any {
		perRank := make([][]float64, len(contribs))
		for i, ci := range contribs {
			perRank[i] = ci.([]float64)
		}
		folded, ferr := foldNumeric(op, perRank, count)
		if ferr != nil {
			return ferr
		}
		return folded
	})
	if ferr, ok := res.(error); ok {
		return nil, ferr
	}
	if root != substrate.RootAll && root != s.rank {
		return nil, nil
	}
	return encodeFloat64s(atom, res.([]float64))
}

func (s *Substrate) Barrier(c substrate.Comm) error {
	w, err := s.worldOf(c)
	if err != nil {
		return err
	}
	w.rendezvous(s.rank, struct{}{}, func([]any) any { return struct{}{} })
	return nil
}

func (s *Substrate) worldOf(c substrate.Comm) (*world, error) {
	w, ok := c.Impl().(*world)
	if !ok || w == nil {
		return nil, fmt.Errorf("localmpi: not a valid communicator for this substrate")
	}
	return w, nil
}

var _ substrate.Substrate = (*Substrate)(nil)

// RunConcurrently is a small helper for tests/examples that drive a
// Sandbox: it runs fn(rank) for every rank's Substrate concurrently and
// waits for all to finish, mirroring the teacher's worker-pool fan-out
// idiom (internal/queue) adapted to goroutine-per-rank instead of
// goroutine-per-queue, using errgroup to join the fan-out the way the
// rest of this module propagates "any error on any rank" (spec §7).
// Every rank's fn still runs to completion even if an earlier one errors,
// since a stuck rank would otherwise deadlock every other rank's
// in-flight rendezvous; errs[i] carries each rank's own result.
func RunConcurrently(substrates []*Substrate, fn func(rank int, s *Substrate) error) []error {
	errs := make([]error, len(substrates))
	var g errgroup.Group
	for i, s := range substrates {
		i, s := i, s
		g.Go(func() error {
			errs[i] = fn(i, s)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
