package timespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RFC3339(t *testing.T) {
	got, err := Parse("2026-08-01T09:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC), got)
}

func TestParse_Duration(t *testing.T) {
	before := time.Now().Add(-time.Hour)
	got, err := Parse("1h")
	require.NoError(t, err)
	after := time.Now().Add(-time.Hour)

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{"", "yesterday", "1 hour", "2026-08-01"}
	for _, spec := range tests {
		t.Run(spec, func(t *testing.T) {
			_, err := Parse(spec)
			assert.Error(t, err)
		})
	}
}
