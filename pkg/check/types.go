package check

// Operation names usable in the "op" field of a check.
const (
	OpParseRFC2822 = "parse_rfc2822"
	OpParseISO8601 = "parse_iso8601"
	OpLeapYear     = "leap_year"
	OpTimeSpan     = "timespan"
	OpClockAngle   = "clock_angle"
)

// Suite is a named group of checks loaded from a single YAML file.
type Suite struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Checks      []Check `yaml:"checks"`

	// FileName is the file the suite was loaded from (set by the loader).
	FileName string `yaml:"-"`
}

// Check is a single expectation over one date/time operation.
// Instant-valued fields are ISO 8601 strings.
type Check struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name,omitempty"`

	// Op names the operation under check (one of the Op* constants).
	Op string `yaml:"op"`

	// Text is the input for parse operations.
	Text string `yaml:"text,omitempty"`

	// Instant is the input for leap-year and clock-angle operations.
	Instant string `yaml:"instant,omitempty"`

	// Start and End bound a timespan operation.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect describes the expected outcome of a check. Exactly one of the
// value fields should be set, or Fail for operations expected to reject
// their input.
type Expect struct {
	// Instant is the expected parse result (ISO 8601).
	Instant string `yaml:"instant,omitempty"`

	// Leap is the expected leap-year predicate result.
	Leap *bool `yaml:"leap,omitempty"`

	// Formatted is the expected "HH:mm:ss.sss" rendering.
	Formatted string `yaml:"formatted,omitempty"`

	// Radians or Degrees is the expected clock-hand angle.
	Radians *float64 `yaml:"radians,omitempty"`
	Degrees *float64 `yaml:"degrees,omitempty"`

	// Tolerance for angle comparison (default 1e-9).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Fail indicates the operation is expected to reject its input.
	Fail bool `yaml:"fail,omitempty"`
}

// knownOps is the set of valid op names.
var knownOps = map[string]bool{
	OpParseRFC2822: true,
	OpParseISO8601: true,
	OpLeapYear:     true,
	OpTimeSpan:     true,
	OpClockAngle:   true,
}
