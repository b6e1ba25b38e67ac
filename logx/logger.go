// Package logx is the severity-filtered logger collaborator (spec §4.7
// Logger / C7): a small reference-counted wrapper over an output sink,
// gated by a minimum Severity, adapted from the teacher's internal
// logging package (level-gated Printf, package-global default) and
// extended with the identifier support the original implementation's
// logger carries (a Name distinguishing otherwise-identical sinks, per
// SPEC_FULL.md's supplement from original_source/).
package logx

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Severity is the six-level scale the spec's logger filters on, from most
// to least verbose.
type Severity int

const (
	Trace Severity = iota
	Debug
	Info
	Warn
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Sink receives one already-formatted line per log call. Loggers built
// with NewSink aren't tied to any particular output format; the default
// Logger writes "[SEVERITY] name: msg key=val ..." lines to an io.Writer
// sink.
type Sink interface {
	Log(level Severity, name, msg string)
}

// writerSink adapts an io.Writer into a Sink with the teacher's
// "[LEVEL] msg key=val" line shape, prefixed with name when set.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) Log(level Severity, name, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != "" {
		fmt.Fprintf(s.w, "[%s] %s: %s\n", level, name, msg)
		return
	}
	fmt.Fprintf(s.w, "[%s] %s\n", level, msg)
}

// sharedState is the refcounted logger payload: severity threshold, sink,
// and name are shared between a Logger and every copy of it, mirroring the
// spec's shared_ptr<logger_state> (C7, C9's pattern applied at component
// scope rather than only at View scope). A WithName derivative gets its own
// sharedState that reuses the same sink and copies the threshold.
type sharedState struct {
	refs     int32
	min      Severity
	sink     Sink
	name     string
}

// Logger is a cheap-to-copy handle onto a sharedState; copying a Logger
// shares the same sink and severity threshold.
type Logger struct {
	state *sharedState
}

// New builds a Logger writing to w, filtering out anything below min.
func New(min Severity, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return fromSink(min, &writerSink{w: w}, "")
}

// NewSink builds a Logger around a caller-supplied Sink instead of an
// io.Writer, for callers that want to route log lines somewhere other
// than a stream (a test spy, a structured-log collector).
func NewSink(min Severity, sink Sink) Logger {
	return fromSink(min, sink, "")
}

func fromSink(min Severity, sink Sink, name string) Logger {
	return Logger{state: &sharedState{refs: 1, min: min, sink: sink, name: name}}
}

// Null returns a Logger that discards everything.
func Null() Logger {
	return NewSink(Critical+1, discardSink{})
}

type discardSink struct{}

func (discardSink) Log(Severity, string, string) {}

// Name returns this logger's identifier, the empty string if unset.
func (l Logger) Name() string {
	if l.state == nil {
		return ""
	}
	return l.state.name
}

// WithName returns a Logger sharing this one's sink and threshold but
// carrying a new name, used to tag a sub-component's log lines (spec's
// original_source supplement: loggers compare equal when their
// identifiers and underlying sink match).
func (l Logger) WithName(name string) Logger {
	if l.state == nil {
		return l
	}
	return fromSink(l.state.min, l.state.sink, name)
}

// Equal reports whether two loggers share both sink identity and name,
// the supplemented equality rule from original_source/.
func (l Logger) Equal(o Logger) bool {
	if l.state == nil || o.state == nil {
		return l.state == o.state
	}
	return l.state.sink == o.state.sink && l.state.name == o.state.name
}

func (l Logger) log(level Severity, msg string, args ...any) {
	if l.state == nil || level < l.state.min {
		return
	}
	l.state.sink.Log(level, l.state.name, msg+formatArgs(args))
}

func (l Logger) Trace(msg string, args ...any)    { l.log(Trace, msg, args...) }
func (l Logger) Debug(msg string, args ...any)    { l.log(Debug, msg, args...) }
func (l Logger) Info(msg string, args ...any)     { l.log(Info, msg, args...) }
func (l Logger) Warn(msg string, args ...any)     { l.log(Warn, msg, args...) }
func (l Logger) Error(msg string, args ...any)    { l.log(Error, msg, args...) }
func (l Logger) Critical(msg string, args ...any) { l.log(Critical, msg, args...) }

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var out string
	for i := 0; i+1 < len(args); i += 2 {
		out += fmt.Sprintf(" %v=%v", args[i], args[i+1])
	}
	return out
}

// Retain bumps the shared state's reference count, for a ResourceSet or
// View that wants to extend the logger's effective lifetime alongside its
// own (spec C9's Retain/Close pattern, applied to the one other component
// that owns shared state).
func (l Logger) Retain() Logger {
	if l.state != nil {
		atomic.AddInt32(&l.state.refs, 1)
	}
	return l
}

// Close decrements the shared reference count. Loggers have no
// OS-visible resource to release, so Close never does more than
// bookkeeping; it exists so callers can treat every shared-state
// component in this module uniformly.
func (l Logger) Close() {
	if l.state != nil {
		atomic.AddInt32(&l.state.refs, -1)
	}
}
