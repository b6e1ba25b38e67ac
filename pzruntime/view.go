// Package pzruntime is the runtime view and resource set (spec §4.8-§4.9
// / C8-C9): the application's single-process handle onto a fixed set of
// resources handed out by whatever launched it.
package pzruntime

import (
	"sync"
	"sync/atomic"

	"github.com/behrlich/pzgo/binary"
	"github.com/behrlich/pzgo/collective"
	"github.com/behrlich/pzgo/commpp"
	"github.com/behrlich/pzgo/config"
	"github.com/behrlich/pzgo/hardware"
	"github.com/behrlich/pzgo/hardware/hwprobe"
	"github.com/behrlich/pzgo/logx"
	"github.com/behrlich/pzgo/perror"
	"github.com/behrlich/pzgo/substrate"
	"github.com/behrlich/pzgo/substrate/localmpi"
)

// viewState is the shared payload behind every Retain()'d handle to one
// View: refcounted since Go has no destructors, with Close() draining a
// LIFO finalizer stack on the last reference (spec §3/§9).
type viewState struct {
	refs atomic.Int64

	sub  substrate.Substrate
	comm commpp.Comm
	owns bool

	resourceSets []ResourceSet
	logger       logx.Logger

	mu         sync.Mutex
	finalizers []func()
}

// View is a cheap-to-copy handle onto a shared viewState.
type View struct {
	state *viewState
}

// New adopts or initializes the world substrate with default options
// (an in-process single-rank substrate; see config.Default).
func New() (*View, error) {
	return NewWithOptions(config.Default())
}

// NewFromArgs initializes the substrate with args (e.g. launcher argv)
// instead of the defaults.
func NewFromArgs(args []string) (*View, error) {
	opts := config.Default()
	opts.SubstrateArgs = args
	return NewWithOptions(opts)
}

// NewWithOptions is NewFromArgs/New's shared constructor. It always
// builds a single-rank substrate: a genuine multi-rank in-process sandbox
// needs one goroutine driving each rank concurrently (every rank's
// collectives rendezvous with every other's), which a single call can't
// set up on its own — build one with localmpi.Sandbox and wrap each
// element with NewFromComm from its own goroutine instead (see
// substrate/localmpi and the collective/hardware/pzruntime test suites
// for the pattern). opts.SandboxSize is accepted for forward
// compatibility with a future launcher-driven substrate but does not
// affect this constructor.
func NewWithOptions(opts config.Options) (*View, error) {
	sub := localmpi.New()
	if err := sub.Init(opts.SubstrateArgs); err != nil {
		return nil, perror.Wrap("pzruntime.New", perror.CodeSubstrateError, err)
	}
	c := commpp.NewComm(sub, sub.WorldComm())
	v, err := newView(sub, c, true, opts)
	if err != nil {
		return nil, err
	}
	v.state.pushFinalizer(func() { _ = sub.Finalize() })
	return v, nil
}

// NewFromComm wraps an already-initialized communicator. The resulting
// View does not own the substrate's lifecycle: Close never finalizes it.
func NewFromComm(c commpp.Comm) (*View, error) {
	return newView(c.Substrate(), c, false, config.Default())
}

func newView(sub substrate.Substrate, c commpp.Comm, owns bool, opts config.Options) (*View, error) {
	state := &viewState{sub: sub, comm: c, owns: owns}
	state.refs.Store(1)
	state.logger = logx.New(opts.LogLevel, nil)

	sets, err := buildResourceSets(c, opts, state.logger)
	if err != nil {
		return nil, err
	}
	state.resourceSets = sets
	return &View{state: state}, nil
}

func buildResourceSets(c commpp.Comm, opts config.Options, logger logx.Logger) ([]ResourceSet, error) {
	size := c.Size()
	sets := make([]ResourceSet, size)

	var totalBytes uint64
	if opts.ProbeRAM {
		if n, err := hwprobe.TotalRAM(); err == nil {
			totalBytes = n
		}
	}

	var perRank []uint64
	if size > 1 {
		gathered, err := collective.Gather(c, totalBytes)
		if err != nil {
			return nil, perror.Wrap("pzruntime.buildResourceSets", perror.CodeSubstrateError, err)
		}
		perRank = gathered.Value
	} else {
		perRank = []uint64{totalBytes}
	}

	for i := 0; i < size; i++ {
		rs := ResourceSet{rank: i, mine: i == c.Me()}
		if i < len(perRank) && perRank[i] > 0 {
			rs.ram = hardware.NewRAM(perRank[i], i, c)
			rs.hasRAM = true
		}
		rs.progressLogger = logger.WithName("progress")
		rs.debugLogger = logger.WithName("debug")
		rs.hasLoggers = true
		sets[i] = rs
	}
	return sets, nil
}

func (s *viewState) pushFinalizer(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalizers = append(s.finalizers, fn)
}

// Retain returns a new handle sharing this View's state, bumping the
// reference count. Every Retain must be matched by a Close.
func (v *View) Retain() *View {
	v.state.refs.Add(1)
	return &View{state: v.state}
}

// Close releases this handle's reference. On the last reference, it
// drains the finalizer stack LIFO (last-pushed finalizes first), which
// finalizes the substrate if this View's constructor claimed ownership of
// it.
func (v *View) Close() error {
	if v.state.refs.Add(-1) > 0 {
		return nil
	}
	v.state.mu.Lock()
	defer v.state.mu.Unlock()
	for i := len(v.state.finalizers) - 1; i >= 0; i-- {
		v.state.finalizers[i]()
	}
	v.state.finalizers = nil
	return nil
}

// Size returns the number of resource sets in this view.
func (v *View) Size() int { return v.state.comm.Size() }

// Comm returns the communicator this view is built on.
func (v *View) Comm() commpp.Comm { return v.state.comm }

// HasMe reports whether the calling process has an assigned rank.
func (v *View) HasMe() bool { return v.state.comm.Me() != substrate.RankNone }

// At returns the i'th resource set, or a CodeMissingState error if i is
// out of range.
func (v *View) At(i int) (ResourceSet, error) {
	if i < 0 || i >= len(v.state.resourceSets) {
		return ResourceSet{}, perror.New("pzruntime.View.At", perror.CodeMissingState, "resource set index out of range")
	}
	return v.state.resourceSets[i], nil
}

// MyResourceSet returns the calling process's resource set, or Null() if
// HasMe() is false.
func (v *View) MyResourceSet() ResourceSet {
	me := v.state.comm.Me()
	if me == substrate.RankNone {
		return Null()
	}
	rs, err := v.At(me)
	if err != nil {
		return Null()
	}
	return rs
}

// Count returns how many resource sets in this view share r's identity
// (spec's node-local-pool grouping; see LocalPeers for the shipped
// in-process substrate's simplification).
func (v *View) Count(r hardware.RAM) int {
	n := 0
	for _, rs := range v.state.resourceSets {
		if rs.hasRAM && rs.ram.Equal(r) {
			n++
		}
	}
	return n
}

// LocalPeers returns the rank ids sharing the calling process's RAM pool
// (spec SUPPLEMENT from original_source/'s node-local grouping use case).
// The only substrate shipped here runs every rank in one OS process, so
// there is no real multi-node distinction to detect: every rank is
// node-local to every other, and LocalPeers returns all of them. A
// substrate backed by a real multi-node transport would instead group by
// host identity.
func (v *View) LocalPeers() []int {
	peers := make([]int, v.Size())
	for i := range peers {
		peers[i] = i
	}
	return peers
}

// Logger returns the view-level logger (not tied to any one resource
// set).
func (v *View) Logger() logx.Logger { return v.state.logger }

// Equal reports whether two Views are both nil, or both non-nil with
// identical communicator and identical logger (spec §4.9).
func (v *View) Equal(o *View) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.state.comm.Equal(o.state.comm) && v.state.logger.Equal(o.state.logger)
}

// StackCallback registers fn to run during Close, in LIFO order with
// every other finalizer pushed on this View (including substrate
// teardown for an owning View) — the Go stand-in for attaching extra
// teardown logic to a destructor.
func (v *View) StackCallback(fn func()) {
	v.state.pushFinalizer(fn)
}

// Gather gathers one T value per rank (spec §4.9; see collective.Gather).
func Gather[T any](v *View, x T, root ...int) (collective.Gathered[[]T], error) {
	return collective.Gather(v.state.comm, x, root...)
}

// GatherV is Gather's variable-length counterpart (see collective.GatherV).
func GatherV[T any](v *View, x T, root ...int) (collective.Gathered[[]T], error) {
	return collective.GatherV(v.state.comm, x, root...)
}

// Reduce combines one T value per rank with op.
func Reduce[T any](v *View, x T, op binary.ReduceOp, root ...int) (collective.Gathered[T], error) {
	return collective.Reduce(v.state.comm, x, op, root...)
}
