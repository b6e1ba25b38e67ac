// Package config is the runtime's options layer: a plain struct plus a
// defaults constructor and an FromEnv override, the same shape the
// teacher uses for its DeviceParams/DefaultParams pair (spec AMBIENT
// STACK: no third-party config library appears anywhere in the retrieval
// pack, so this stays on the standard library by necessity rather than
// choice — see DESIGN.md).
package config

import (
	"os"
	"strconv"

	"github.com/behrlich/pzgo/logx"
)

// Options controls how a pzruntime.View materializes its substrate and
// resource descriptors.
type Options struct {
	// LogLevel is the minimum severity the view's loggers emit.
	LogLevel logx.Severity
	// SubstrateArgs are passed to Substrate.Init (e.g. a launcher's
	// argv-style configuration).
	SubstrateArgs []string
	// SandboxSize documents the size of an in-process localmpi sandbox a
	// caller intends to drive (see substrate/localmpi.Sandbox); it isn't
	// consumed by pzruntime.NewWithOptions, which always builds a
	// single-rank substrate, since wiring up a multi-rank sandbox needs
	// one goroutine per rank calling pzruntime.NewFromComm concurrently.
	SandboxSize int
	// ProbeRAM, when true, calls hwprobe.TotalRAM to populate each
	// resource set's RAM descriptor; when false, RAM is left empty.
	ProbeRAM bool
}

// Default returns the out-of-the-box options: info-level logging, no
// substrate args, no sandbox (a real single-rank deployment), RAM
// probing on.
func Default() Options {
	return Options{
		LogLevel: logx.Info,
		ProbeRAM: true,
	}
}

// FromEnv overlays environment-variable overrides onto Default(): PZGO_LOG
// (trace|debug|info|warn|error|critical), PZGO_SANDBOX_SIZE (int),
// PZGO_PROBE_RAM (bool, as parsed by strconv.ParseBool).
func FromEnv() Options {
	opts := Default()
	if v, ok := os.LookupEnv("PZGO_LOG"); ok {
		if sev, ok := parseSeverity(v); ok {
			opts.LogLevel = sev
		}
	}
	if v, ok := os.LookupEnv("PZGO_SANDBOX_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			opts.SandboxSize = n
		}
	}
	if v, ok := os.LookupEnv("PZGO_PROBE_RAM"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.ProbeRAM = b
		}
	}
	return opts
}

func parseSeverity(s string) (logx.Severity, bool) {
	switch s {
	case "trace":
		return logx.Trace, true
	case "debug":
		return logx.Debug, true
	case "info":
		return logx.Info, true
	case "warn":
		return logx.Warn, true
	case "error":
		return logx.Error, true
	case "critical":
		return logx.Critical, true
	default:
		return 0, false
	}
}
