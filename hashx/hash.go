// Package hashx is the hashing collaborator (spec §6): a structural hash
// over an arbitrary value, exposed to callers without requiring every
// payload type to implement its own hash method. No other package in this
// module calls it.
package hashx

import (
	"bytes"
	"encoding/gob"
	"hash/fnv"
	"strconv"
)

// Hash returns a stable hex digest of x's gob encoding. Two values that
// gob-encode identically hash identically; values that can't be
// gob-encoded (channels, funcs, unexported-only structs with no exported
// fields) return an error instead of silently hashing their type name.
func Hash(x any) (string, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(x); err != nil {
		return "", err
	}
	h := fnv.New128a()
	h.Write(buf.Bytes())
	return strconv.FormatUint(uint64(len(buf.Bytes())), 16) + "-" + hexString(h.Sum(nil)), nil
}

func hexString(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
