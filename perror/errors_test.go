package perror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/perror"
)

func TestErrorFormatsOpCodeMsg(t *testing.T) {
	err := perror.New("collective.Reduce", perror.CodeBufferMisSized, "short buffer")
	require.Contains(t, err.Error(), "collective.Reduce")
	require.Contains(t, err.Error(), "short buffer")
}

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("boom")
	wrapped := perror.Wrap("binary.FromBuffer", perror.CodeSerialization, cause)
	require.ErrorIs(t, wrapped, cause)
	require.True(t, perror.Matches(wrapped, perror.CodeSerialization))
}

func TestWrapNilIsNil(t *testing.T) {
	require.Nil(t, perror.Wrap("op", perror.CodeAllocation, nil))
}

func TestIsMatchesOnCodeAlone(t *testing.T) {
	err := fmt.Errorf("outer: %w", perror.New("op", perror.CodeMissingState, "no RAM descriptor"))
	require.True(t, errors.Is(err, perror.New("", perror.CodeMissingState, "")))
	require.False(t, errors.Is(err, perror.New("", perror.CodeSubstrateError, "")))
}
