// Package timespec parses the time specifications accepted by list filters.
package timespec

import (
	"fmt"
	"time"
)

// Parse parses a time specification into a point in time.
// Two formats are supported:
//   - Go duration format: "1h", "30m", "72h30m" (relative, meaning "that
//     long ago")
//   - RFC3339 timestamps: "2026-08-01T09:00:00Z"
func Parse(spec string) (time.Time, error) {
	if spec == "" {
		return time.Time{}, fmt.Errorf("empty time specification")
	}

	if t, err := time.Parse(time.RFC3339, spec); err == nil {
		return t, nil
	}

	if d, err := time.ParseDuration(spec); err == nil {
		return time.Now().Add(-d), nil
	}

	return time.Time{}, fmt.Errorf("invalid time specification: %s (use a duration like '72h' or RFC3339 like '2026-08-01T09:00:00Z')", spec)
}
