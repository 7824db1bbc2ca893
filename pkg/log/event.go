package log

import "time"

// Event represents a single date/time computation performed through one
// of the horo frontends. CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the computation was performed (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RequestID uniquely identifies the request or shell session (UUID).
	RequestID string `cbor:"2,keyasint"`

	// Source indicates which frontend performed the computation.
	Source Source `cbor:"3,keyasint"`

	// Operation identifies the computation.
	Operation Operation `cbor:"4,keyasint"`

	// Outcome classifies how the computation ended.
	Outcome Outcome `cbor:"5,keyasint"`

	// Input captures the operation arguments (set when available).
	Input *InputData `cbor:"6,keyasint,omitempty"`

	// Result captures the operation output (set on OutcomeOK).
	Result *ResultData `cbor:"7,keyasint,omitempty"`

	// Error captures failure details (set on non-OK outcomes).
	Error *ErrorData `cbor:"8,keyasint,omitempty"`
}

// Source indicates which frontend performed a computation.
type Source uint8

const (
	// SourceShell is the interactive horo-shell frontend.
	SourceShell Source = 0
	// SourceWeb is the horo-web HTTP frontend.
	SourceWeb Source = 1
	// SourceCheck is the check-suite runner.
	SourceCheck Source = 2
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceShell:
		return "SHELL"
	case SourceWeb:
		return "WEB"
	case SourceCheck:
		return "CHECK"
	default:
		return "UNKNOWN"
	}
}

// Operation identifies a date/time computation.
type Operation uint8

const (
	// OpParseRFC2822 is RFC 2822 date-time parsing.
	OpParseRFC2822 Operation = 0
	// OpParseISO8601 is ISO 8601 date-time parsing.
	OpParseISO8601 Operation = 1
	// OpLeapYear is the leap-year predicate.
	OpLeapYear Operation = 2
	// OpTimeSpan is fixed-width timespan formatting.
	OpTimeSpan Operation = 3
	// OpClockAngle is the clock-hand angle computation.
	OpClockAngle Operation = 4
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpParseRFC2822:
		return "PARSE_RFC2822"
	case OpParseISO8601:
		return "PARSE_ISO8601"
	case OpLeapYear:
		return "LEAP_YEAR"
	case OpTimeSpan:
		return "TIMESPAN"
	case OpClockAngle:
		return "CLOCK_ANGLE"
	default:
		return "UNKNOWN"
	}
}

// Outcome classifies how a computation ended.
type Outcome uint8

const (
	// OutcomeOK indicates the computation succeeded.
	OutcomeOK Outcome = 0
	// OutcomeParseFailure indicates the input text matched no known format.
	OutcomeParseFailure Outcome = 1
	// OutcomeInvalidInput indicates arguments outside the operation's
	// domain (e.g. a negative timespan).
	OutcomeInvalidInput Outcome = 2
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeParseFailure:
		return "PARSE_FAILURE"
	case OutcomeInvalidInput:
		return "INVALID_INPUT"
	default:
		return "UNKNOWN"
	}
}

// InputData captures the arguments of a computation.
// Only the fields relevant to the operation are set.
type InputData struct {
	// Text is the raw input for parse operations.
	Text string `cbor:"1,keyasint,omitempty"`

	// Instant is the input for leap-year and clock-angle operations.
	Instant *time.Time `cbor:"2,keyasint,omitempty"`

	// Start and End bound a timespan operation.
	Start *time.Time `cbor:"3,keyasint,omitempty"`
	End   *time.Time `cbor:"4,keyasint,omitempty"`
}

// ResultData captures the output of a successful computation.
// Only the field relevant to the operation is set.
type ResultData struct {
	// Instant is the parsed instant (parse operations).
	Instant *time.Time `cbor:"1,keyasint,omitempty"`

	// Leap is the predicate result (leap-year operation).
	Leap *bool `cbor:"2,keyasint,omitempty"`

	// Formatted is the rendered span (timespan operation).
	Formatted string `cbor:"3,keyasint,omitempty"`

	// Radians is the hand angle (clock-angle operation).
	Radians *float64 `cbor:"4,keyasint,omitempty"`
}

// ErrorData captures failure details.
type ErrorData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being computed.
	Context string `cbor:"2,keyasint,omitempty"`
}
