package logx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/logx"
)

func TestSeverityFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := logx.New(logx.Warn, &buf)

	l.Info("should be filtered")
	require.Empty(t, buf.String())

	l.Warn("should appear")
	require.Contains(t, buf.String(), "should appear")
	require.Contains(t, buf.String(), "[WARN]")
}

func TestWithNameTagsLines(t *testing.T) {
	var buf bytes.Buffer
	l := logx.New(logx.Trace, &buf)
	named := l.WithName("worker-1")

	named.Error("boom")
	require.Contains(t, buf.String(), "worker-1: boom")
}

func TestKeyValueArgs(t *testing.T) {
	var buf bytes.Buffer
	l := logx.New(logx.Trace, &buf)

	l.Debug("processing", "rank", 2, "size", 4)
	require.Contains(t, buf.String(), "rank=2")
	require.Contains(t, buf.String(), "size=4")
}

func TestNullDiscardsEverything(t *testing.T) {
	n := logx.Null()
	n.Critical("this must not panic or be observable anywhere")
}

func TestWithNameSharesSinkNotIdentity(t *testing.T) {
	var buf bytes.Buffer
	base := logx.New(logx.Info, &buf)
	a := base.WithName("a")
	b := base.WithName("b")

	require.False(t, a.Equal(b))
	require.True(t, a.Equal(a.WithName("a")))
}
