package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.FixedZone("CET", 3600))
	s := formatTime(in)
	assert.Equal(t, "2026-01-02T02:04:05.678Z", s)

	out, err := parseTime(s)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
}

func TestParseTime_AcceptsRFC3339(t *testing.T) {
	out, err := parseTime("2026-01-02T03:04:05+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 2, 4, 5, 0, time.UTC), out)
}

func TestParseTime_Invalid(t *testing.T) {
	_, err := parseTime("yesterday")
	assert.Error(t, err)
}
