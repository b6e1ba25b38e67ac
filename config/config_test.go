package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/config"
	"github.com/behrlich/pzgo/logx"
)

func TestDefaultOptions(t *testing.T) {
	opts := config.Default()
	require.Equal(t, logx.Info, opts.LogLevel)
	require.True(t, opts.ProbeRAM)
	require.Zero(t, opts.SandboxSize)
}

func TestFromEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PZGO_LOG", "debug")
	t.Setenv("PZGO_SANDBOX_SIZE", "4")
	t.Setenv("PZGO_PROBE_RAM", "false")

	opts := config.FromEnv()
	require.Equal(t, logx.Debug, opts.LogLevel)
	require.Equal(t, 4, opts.SandboxSize)
	require.False(t, opts.ProbeRAM)
}

func TestFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("PZGO_LOG", "not-a-level")
	opts := config.FromEnv()
	require.Equal(t, logx.Info, opts.LogLevel)
}
