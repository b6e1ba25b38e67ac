package pzruntime

import (
	"github.com/behrlich/pzgo/hardware"
	"github.com/behrlich/pzgo/logx"
	"github.com/behrlich/pzgo/perror"
	"github.com/behrlich/pzgo/substrate"
)

// ResourceSet describes one member of a View: its rank, whether it is the
// calling process, and the RAM/logger resources the view materialized for
// it (spec §4.8 / C8).
type ResourceSet struct {
	rank           int
	mine           bool
	ram            hardware.RAM
	hasRAM         bool
	progressLogger logx.Logger
	debugLogger    logx.Logger
	hasLoggers     bool
}

// Null returns the empty resource set: RankNone, no RAM, no loggers.
func Null() ResourceSet {
	return ResourceSet{rank: substrate.RankNone}
}

// Empty reports whether this is the Null() resource set.
func (r ResourceSet) Empty() bool { return r.rank == substrate.RankNone && !r.hasRAM }

// Rank returns this resource set's rank, or substrate.RankNone.
func (r ResourceSet) Rank() int { return r.rank }

// IsMine reports whether this resource set names the calling process.
func (r ResourceSet) IsMine() bool { return r.mine }

// HasRAM reports whether a RAM descriptor was materialized for this rank.
func (r ResourceSet) HasRAM() bool { return r.hasRAM }

// RAM returns this resource set's RAM descriptor, or a CodeMissingState
// error if none was materialized.
func (r ResourceSet) RAM() (hardware.RAM, error) {
	if !r.hasRAM {
		return hardware.RAM{}, perror.New("pzruntime.ResourceSet.RAM", perror.CodeMissingState, "resource set has no RAM descriptor")
	}
	return r.ram, nil
}

// ProgressLogger returns this resource set's progress-severity logger, or
// a CodeMissingState error if none was configured.
func (r ResourceSet) ProgressLogger() (logx.Logger, error) {
	if !r.hasLoggers {
		return logx.Logger{}, perror.New("pzruntime.ResourceSet.ProgressLogger", perror.CodeMissingState, "resource set has no logger")
	}
	return r.progressLogger, nil
}

// DebugLogger returns this resource set's debug-severity logger, or a
// CodeMissingState error if none was configured.
func (r ResourceSet) DebugLogger() (logx.Logger, error) {
	if !r.hasLoggers {
		return logx.Logger{}, perror.New("pzruntime.ResourceSet.DebugLogger", perror.CodeMissingState, "resource set has no logger")
	}
	return r.debugLogger, nil
}

// Equal reports whether two resource sets are both Null(), or both non-null
// with identical rank, RAM, and loggers (spec §4.8).
func (r ResourceSet) Equal(o ResourceSet) bool {
	if r.Empty() || o.Empty() {
		return r.Empty() && o.Empty()
	}
	if r.rank != o.rank || r.mine != o.mine {
		return false
	}
	if r.hasRAM != o.hasRAM || (r.hasRAM && !r.ram.Equal(o.ram)) {
		return false
	}
	if r.hasLoggers != o.hasLoggers {
		return false
	}
	if r.hasLoggers && (!r.progressLogger.Equal(o.progressLogger) || !r.debugLogger.Equal(o.debugLogger)) {
		return false
	}
	return true
}
