package localmpi

import "sync"

// world is the shared rendezvous point for every rank's Substrate in an
// in-process group. Each collective call blocks the calling goroutine until
// every rank has contributed, then computes the result exactly once (the
// last arriving goroutine does the work) and releases every waiter with
// the same answer — a one-shot generational barrier, the in-process
// analogue of a real MPI collective's "every rank blocks until the
// operation completes" contract (spec §4.4 Ordering guarantees).
type world struct {
	size int

	mu           sync.Mutex
	cond         *sync.Cond
	generation   int
	arrived      int
	contribution []any
	result       any
}

func newWorld(size int) *world {
	w := &world{size: size, contribution: make([]any, size)}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// rendezvous contributes this rank's value and blocks until every rank has
// contributed for the current generation, then returns the shared result
// produced by compute (called exactly once, by whichever goroutine arrives
// last, with every rank's contribution visible).
func (w *world) rendezvous(rank int, contribution any, compute func(contributions []any) any) any {
	w.mu.Lock()
	defer w.mu.Unlock()

	gen := w.generation
	w.contribution[rank] = contribution
	w.arrived++

	if w.arrived == w.size {
		w.result = compute(w.contribution)
		w.arrived = 0
		w.contribution = make([]any, w.size)
		w.generation++
		w.cond.Broadcast()
		return w.result
	}

	for gen == w.generation {
		w.cond.Wait()
	}
	return w.result
}
