package log

import "testing"

func TestSourceString(t *testing.T) {
	cases := []struct {
		source Source
		want   string
	}{
		{SourceShell, "SHELL"},
		{SourceWeb, "WEB"},
		{SourceCheck, "CHECK"},
		{Source(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.source.String(); got != c.want {
			t.Errorf("Source(%d).String() = %q, want %q", c.source, got, c.want)
		}
	}
}

func TestOperationString(t *testing.T) {
	cases := []struct {
		op   Operation
		want string
	}{
		{OpParseRFC2822, "PARSE_RFC2822"},
		{OpParseISO8601, "PARSE_ISO8601"},
		{OpLeapYear, "LEAP_YEAR"},
		{OpTimeSpan, "TIMESPAN"},
		{OpClockAngle, "CLOCK_ANGLE"},
		{Operation(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("Operation(%d).String() = %q, want %q", c.op, got, c.want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeOK, "OK"},
		{OutcomeParseFailure, "PARSE_FAILURE"},
		{OutcomeInvalidInput, "INVALID_INPUT"},
		{Outcome(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.outcome.String(); got != c.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", c.outcome, got, c.want)
		}
	}
}
