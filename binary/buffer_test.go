package binary_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/pzgo/binary"
)

func TestBufferSizeDataInvariant(t *testing.T) {
	var b binary.Buffer
	require.Equal(t, 0, b.Size())
	require.Nil(t, b.Data())

	b2 := binary.FromBytes([]byte("hi"))
	require.Equal(t, 2, b2.Size())
	require.NotNil(t, b2.Data())
}

func TestBufferCloneIsDeep(t *testing.T) {
	b := binary.FromBytes([]byte{1, 2, 3})
	c := b.Clone()
	require.True(t, b.Equal(c))

	// Mutating the clone's backing array must not affect the original.
	c.Data()[0] = 0xff
	require.False(t, b.Equal(c))
}

func TestBufferTakeEmptiesSource(t *testing.T) {
	b := binary.FromBytes([]byte{9, 9})
	taken := b.Take()
	require.Equal(t, []byte{9, 9}, taken)
	require.Equal(t, 0, b.Size())
	require.Nil(t, b.Data())
}

func TestBufferSwap(t *testing.T) {
	a := binary.FromBytes([]byte{1})
	b := binary.FromBytes([]byte{2, 2})
	a.Swap(&b)
	require.Equal(t, 2, a.Size())
	require.Equal(t, 1, b.Size())
}

func TestEmptyBufferIterYieldsNoElements(t *testing.T) {
	var b binary.Buffer
	require.Len(t, b.Iter(), 0)
}

// Scenario 1: binary round-trip of a contiguous numeric buffer.
func TestRoundTripContiguousDoubles(t *testing.T) {
	x := []float64{1.1, 1.2, 1.3}
	b, err := binary.MakeBuffer(x)
	require.NoError(t, err)
	require.Equal(t, 24, b.Size())

	y, err := binary.FromBuffer[[]float64](b)
	require.NoError(t, err)
	if !floatsEqual(x, y) {
		t.Fatalf("round trip mismatch: %s vs %s", spew.Sdump(x), spew.Sdump(y))
	}
}

// Scenario 2: binary round-trip of a container-of-string (serialized path).
func TestRoundTripContainerOfString(t *testing.T) {
	x := []string{"Hello", "World"}
	b, err := binary.MakeBuffer(x)
	require.NoError(t, err)

	y, err := binary.FromBuffer[[]string](b)
	require.NoError(t, err)
	require.Equal(t, x, y)
}

func TestRoundTripPlainString(t *testing.T) {
	x := "hello, pzgo"
	b, err := binary.MakeBuffer(x)
	require.NoError(t, err)
	require.Equal(t, len(x), b.Size())

	y, err := binary.FromBuffer[string](b)
	require.NoError(t, err)
	require.Equal(t, x, y)
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
