package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHash_Deterministic(t *testing.T) {
	a := NewHash([]byte("same"))
	b := NewHash([]byte("same"))
	assert.Equal(t, a, b)
	assert.Len(t, a.String(), 64)
	assert.NotEqual(t, a, NewHash([]byte("other")))
	assert.Equal(t, a.String()[:12], a.Short())
}

func TestComputeFingerprint_SeparatesParts(t *testing.T) {
	assert.NotEqual(t, ComputeFingerprint("ab", "c"), ComputeFingerprint("a", "bc"))
	assert.Equal(t, ComputeFingerprint("x", "y"), ComputeFingerprint("x", "y"))
}

func TestRunID_RoundTrip(t *testing.T) {
	id := NewRunID()
	parsed, err := ParseRunID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseRunID("  ")
	assert.Error(t, err)
	_, err = ParseRunID("not-a-uuid")
	assert.Error(t, err)
}

func TestTimestamp_ISO(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 3, 4, 5, 6, 7, 891000, time.UTC))
	assert.Equal(t, "2025-03-04T05:06:07.000891", ts.ISO())
}
