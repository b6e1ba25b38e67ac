// Package substratetest provides Mock, a configurable substrate.Substrate
// test double: call-count tracking and a Reset method, adapted from the
// teacher's MockBackend (testing.go) pattern for exercising the
// communicator façade and typed collectives without a real multi-rank
// substrate.
package substratetest

import (
	"sync"

	"github.com/behrlich/pzgo/substrate"
)

// Mock is a single-rank substrate.Substrate whose collective results are
// entirely caller-scripted: set the *Result/*Err fields before invoking,
// then inspect CallCounts() and the Last* fields afterward.
type Mock struct {
	mu sync.RWMutex

	initialized bool

	GatherFixedResult []byte
	GatherFixedErr    error
	GatherVData       []byte
	GatherVSizes      []int
	GatherVErr        error
	ReduceResult      []byte
	ReduceErr         error
	BarrierErr        error

	initCalls         int
	finalizeCalls     int
	gatherFixedCalls  int
	gatherVCalls      int
	reduceCalls       int
	barrierCalls      int

	LastLocal []byte
	LastRoot  int
}

// New returns a Mock with no canned errors and empty results.
func New() *Mock { return &Mock{} }

func (m *Mock) Init(args []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	m.initialized = true
	return nil
}

func (m *Mock) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizeCalls++
	m.initialized = false
	return nil
}

func (m *Mock) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

func (m *Mock) WorldComm() substrate.Comm { return substrate.NewComm(m) }
func (m *Mock) NullComm() substrate.Comm  { return substrate.Comm{} }

func (m *Mock) CommSize(c substrate.Comm) int {
	if c.Impl() != m {
		return 0
	}
	return 1
}

func (m *Mock) CommRank(c substrate.Comm) int {
	if c.Impl() != m {
		return substrate.RankNone
	}
	return 0
}

func (m *Mock) CommCompare(a, b substrate.Comm) bool {
	return a.Impl() == b.Impl()
}

func (m *Mock) GatherFixed(c substrate.Comm, root int, local []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gatherFixedCalls++
	m.LastLocal = local
	m.LastRoot = root
	return m.GatherFixedResult, m.GatherFixedErr
}

func (m *Mock) GatherV(c substrate.Comm, root int, local []byte) ([]byte, []int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gatherVCalls++
	m.LastLocal = local
	m.LastRoot = root
	return m.GatherVData, m.GatherVSizes, m.GatherVErr
}

func (m *Mock) Reduce(c substrate.Comm, root int, atom substrate.Atom, op substrate.Op, count int, local []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reduceCalls++
	m.LastLocal = local
	m.LastRoot = root
	return m.ReduceResult, m.ReduceErr
}

func (m *Mock) Barrier(c substrate.Comm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.barrierCalls++
	return m.BarrierErr
}

// CallCounts returns how many times each collective has been invoked.
func (m *Mock) CallCounts() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]int{
		"init":         m.initCalls,
		"finalize":     m.finalizeCalls,
		"gather_fixed": m.gatherFixedCalls,
		"gather_v":     m.gatherVCalls,
		"reduce":       m.reduceCalls,
		"barrier":      m.barrierCalls,
	}
}

// Reset zeroes every call counter without touching the scripted results.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls = 0
	m.finalizeCalls = 0
	m.gatherFixedCalls = 0
	m.gatherVCalls = 0
	m.reduceCalls = 0
	m.barrierCalls = 0
}

var _ substrate.Substrate = (*Mock)(nil)
