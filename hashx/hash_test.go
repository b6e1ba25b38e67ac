package hashx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/hashx"
)

func TestHashIsStableForEqualValues(t *testing.T) {
	a, err := hashx.Hash([]int{1, 2, 3})
	require.NoError(t, err)
	b, err := hashx.Hash([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestHashDiffersForDifferentValues(t *testing.T) {
	a, err := hashx.Hash("alpha")
	require.NoError(t, err)
	b, err := hashx.Hash("beta")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHashRejectsUnencodable(t *testing.T) {
	_, err := hashx.Hash(make(chan int))
	require.Error(t, err)
}
