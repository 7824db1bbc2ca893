// Package clockangle computes the angle between the hands of an analog
// clock showing a given instant.
//
// The minute hand advances 6 degrees per minute (360/60); the hour hand
// advances 0.5 degrees per minute (360/(12*60)), moving continuously
// through the hour. Their signed angular difference simplifies to
// 0.5*(60*h - 11*m) degrees. The result is normalized to the smaller of
// the two arcs, so the range is always [0, pi] radians.
package clockangle

import (
	"math"
	"time"
)

// Radians returns the angle in radians between the hour and minute hands
// at the UTC hour and minute of t.
func Radians(t time.Time) float64 {
	u := t.UTC()
	return FromHourMinute(u.Hour(), u.Minute())
}

// Degrees returns the angle in degrees between the hour and minute hands
// at the UTC hour and minute of t.
func Degrees(t time.Time) float64 {
	u := t.UTC()
	return degrees(u.Hour(), u.Minute())
}

// FromHourMinute returns the angle in radians for broken-out hour-of-day
// and minute-of-hour components. Hour is reduced to the 12-hour cycle.
func FromHourMinute(hour, minute int) float64 {
	return degrees(hour, minute) * math.Pi / 180
}

func degrees(hour, minute int) float64 {
	h12 := hour % 12
	diff := math.Abs(0.5 * float64(60*h12-11*minute))
	if 360-diff < diff {
		diff = 360 - diff
	}
	return diff
}
