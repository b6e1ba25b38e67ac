package substrate

import "errors"

// ErrUnsupportedReduce is returned by Substrate.Reduce when the
// implementation has no native mapping for the requested (atom, op) pair.
var ErrUnsupportedReduce = errors.New("substrate: no native reduction for this atom/op pair")

// ErrNotInitialized is returned when a collective is attempted on a
// substrate that has not been Init'd.
var ErrNotInitialized = errors.New("substrate: not initialized")

// ErrShortBuffer is returned when an explicit output view supplied to a
// fixed gather is smaller than size*n bytes (spec §4.4, §7 item 2).
var ErrShortBuffer = errors.New("substrate: output buffer too small")
