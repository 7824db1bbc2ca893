// Package timespan formats elapsed time between two instants as a
// fixed-width "HH:mm:ss.sss" string.
//
// The elapsed span is decomposed into hours, minutes, seconds, and
// milliseconds by floor division, each remainder carried to the next
// smaller unit. Hours, minutes, and seconds are zero-padded to two
// digits; milliseconds to three. Spans of 100 hours or more widen the
// hours field naturally rather than being truncated.
package timespan

import (
	"errors"
	"fmt"
	"time"
)

// ErrNegativeSpan is returned when end precedes start. A negative span
// has no defined rendering, so it is rejected instead of silently
// producing a malformed string.
var ErrNegativeSpan = errors.New("timespan: end before start")

// Millisecond divisors for span decomposition.
const (
	millisPerHour   = 3_600_000
	millisPerMinute = 60_000
	millisPerSecond = 1_000
)

// Format returns the time elapsed from start to end as "HH:mm:ss.sss".
// Returns ErrNegativeSpan if end precedes start.
func Format(start, end time.Time) (string, error) {
	elapsed := end.Sub(start).Milliseconds()
	if elapsed < 0 {
		return "", ErrNegativeSpan
	}
	return FormatMillis(elapsed), nil
}

// FormatMillis renders a non-negative millisecond count as "HH:mm:ss.sss".
// Behavior for negative input is unspecified; callers are expected to
// validate first (Format does).
func FormatMillis(ms int64) string {
	hours := ms / millisPerHour
	minutes := ms / millisPerMinute % 60
	seconds := ms / millisPerSecond % 60
	millis := ms % millisPerSecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
