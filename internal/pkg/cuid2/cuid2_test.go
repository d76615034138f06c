package cuid2

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New("req")
	assert.True(t, strings.HasPrefix(id, "req_"))
	// prefix + "_" + 6 timestamp chars + 18 random chars
	assert.Len(t, id, len("req")+1+6+randomLength)
	assert.Regexp(t, regexp.MustCompile(`^req_[0-9A-Za-z]+$`), id)
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New("req")
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestEncodeTimestampSortable(t *testing.T) {
	assert.Equal(t, "000000", encodeTimestamp(0))
	assert.Equal(t, "000001", encodeTimestamp(1))

	earlier := encodeTimestamp(1700000000)
	later := encodeTimestamp(1700000001)
	assert.Less(t, earlier, later)
	assert.Len(t, earlier, 6)
}

func TestRandomAlphabet(t *testing.T) {
	s := random(256)
	assert.Len(t, s, 256)
	for _, c := range s {
		assert.Contains(t, alphabet, string(c))
	}
}
