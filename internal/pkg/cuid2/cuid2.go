// Package cuid2 generates collision-resistant request identifiers. IDs are
// base62 with a time-sortable prefix so log lines for one request cluster
// when sorted.
package cuid2

import (
	crand "crypto/rand"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// randomLength is the number of random characters after the timestamp,
// about 107 bits of entropy.
const randomLength = 18

// New returns a prefixed identifier, e.g. "req_0aB3xY...".
func New(prefix string) string {
	return prefix + "_" + encodeTimestamp(time.Now().Unix()) + random(randomLength)
}

// encodeTimestamp encodes Unix seconds as 6 base62 characters,
// lexicographically sortable until roughly year 3800.
func encodeTimestamp(seconds int64) string {
	var out [6]byte
	n := seconds
	for i := 5; i >= 0; i-- {
		out[i] = alphabet[n%62]
		n /= 62
	}
	return string(out[:])
}

// random returns length uniformly distributed base62 characters. Six bits
// are drawn per candidate and values >= 62 rejected, keeping the
// distribution uniform.
func random(length int) string {
	buf := make([]byte, (length*6)/8+4)
	if _, err := crand.Read(buf); err != nil {
		panic("cuid2: read random bytes: " + err.Error())
	}

	var b strings.Builder
	b.Grow(length)
	var bits uint64
	var have uint
	idx := 0

	for b.Len() < length {
		for have < 6 && idx < len(buf) {
			bits = bits<<8 | uint64(buf[idx])
			have += 8
			idx++
		}
		v := (bits >> (have - 6)) & 0x3f
		have -= 6
		if v < 62 {
			b.WriteByte(alphabet[v])
		}
		if idx >= len(buf) && b.Len() < length {
			if _, err := crand.Read(buf); err != nil {
				panic("cuid2: read random bytes: " + err.Error())
			}
			idx, bits, have = 0, 0, 0
		}
	}
	return b.String()
}
