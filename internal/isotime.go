// internal/isotime.go
// -------------------
// Helpers for the ISO-8601 timestamps that flow through request parameters
// and persisted tokens, and for chunk-boundary arithmetic near the edge of
// the representable time range.
package internal

import (
	"fmt"
	"time"
)

// MaxTime is the largest timestamp the time package can represent. Chunk
// arithmetic saturates here instead of wrapping.
var MaxTime = time.Unix(1<<63-62135596801, 999999999).UTC()

// FormatISO renders a timestamp as ISO-8601 with nanosecond precision and an
// explicit offset, the form every value written into request parameters and
// token files uses.
func FormatISO(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseISO converts a value that may already be a time.Time, or an ISO-8601
// string, into a time.Time. Anything else is an error.
func ParseISO(v interface{}) (time.Time, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, tv)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing %q as ISO-8601: %w", tv, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("expected time.Time or ISO-8601 string, got %T", v)
	}
}

// SaturatingAdd adds d to t, clamping to MaxTime if the sum would overflow
// the representable range. d must be positive.
func SaturatingAdd(t time.Time, d time.Duration) time.Time {
	sum := t.Add(d)
	if sum.Before(t) {
		return MaxTime
	}
	return sum
}
