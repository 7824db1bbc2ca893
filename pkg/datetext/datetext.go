// Package datetext converts textual date/time representations to instants.
//
// Two textual families are supported: RFC 2822 date-time strings as used
// in email headers (with a looser free-form variant), and ISO 8601
// combined date-time strings with an optional Z or numeric UTC offset.
// Conversion delegates entirely to the standard library's layout-based
// parser; no custom grammar is implemented.
//
// Parsing is isolated behind the narrow Parser interface so the backend
// is swappable without touching callers.
package datetext

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparseable is returned when text matches none of the recognized
// layouts. It is surfaced directly to the caller; there is no retry or
// recovery.
var ErrUnparseable = errors.New("datetext: unparseable date/time text")

// Parser converts a textual date/time representation to an instant.
type Parser interface {
	// Parse returns the instant denoted by text, or an error wrapping
	// ErrUnparseable when text is not a recognized representation.
	Parse(text string) (time.Time, error)
}

// rfc2822Layouts covers RFC 2822 section 3.3 date-time strings plus the
// looser free-form style ("December 17, 1995 03:24:00"). Variants with a
// single-digit day are listed alongside the zero-padded forms.
var rfc2822Layouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.RFC822,
	time.RFC822Z,
	"2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"January 2, 2006 15:04:05",
	"January 2, 2006 3:04:05 PM",
	"January 2, 2006",
}

// iso8601Layouts covers ISO 8601 combined date-time strings. Layouts
// without a zone designator parse as UTC.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseRFC2822 interprets text per the RFC 2822 date-time grammar,
// e.g. "Tue, 26 Jan 2016 13:48:02 GMT", also accepting the free-form
// style "December 17, 1995 03:24:00".
func ParseRFC2822(text string) (time.Time, error) {
	return parseLayouts(text, rfc2822Layouts)
}

// ParseISO8601 interprets text as an ISO 8601 combined date-time string
// with an optional Z or numeric UTC-offset suffix, e.g.
// "2016-01-19T16:07:37+00:00" or "2016-01-19T08:07:37Z".
func ParseISO8601(text string) (time.Time, error) {
	return parseLayouts(text, iso8601Layouts)
}

func parseLayouts(text string, layouts []string) (time.Time, error) {
	trimmed := strings.TrimSpace(text)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
}

// Family identifies the textual family a string was parsed as.
type Family int

const (
	FamilyISO8601 Family = iota
	FamilyRFC2822
)

// String returns the family name.
func (f Family) String() string {
	if f == FamilyRFC2822 {
		return "rfc2822"
	}
	return "iso8601"
}

// ParseAny tries both supported families, ISO 8601 layouts first, and
// reports which family matched. On failure the returned family is
// FamilyISO8601.
func ParseAny(text string) (time.Time, Family, error) {
	if t, err := ParseISO8601(text); err == nil {
		return t, FamilyISO8601, nil
	}
	t, err := ParseRFC2822(text)
	if err != nil {
		return time.Time{}, FamilyISO8601, err
	}
	return t, FamilyRFC2822, nil
}

// Flexible is a Parser that accepts both supported families, trying
// ISO 8601 layouts first.
type Flexible struct{}

// Parse implements Parser.
func (Flexible) Parse(text string) (time.Time, error) {
	t, _, err := ParseAny(text)
	return t, err
}

// Compile-time interface satisfaction check.
var _ Parser = Flexible{}
