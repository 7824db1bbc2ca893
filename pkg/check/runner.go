package check

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/horo-tools/horo-go/pkg/calendar"
	"github.com/horo-tools/horo-go/pkg/clockangle"
	"github.com/horo-tools/horo-go/pkg/datetext"
	"github.com/horo-tools/horo-go/pkg/log"
	"github.com/horo-tools/horo-go/pkg/timespan"
)

// defaultTolerance is the angle comparison tolerance when a check does
// not specify one.
const defaultTolerance = 1e-9

// Result is the outcome of evaluating a single check.
type Result struct {
	Check    Check
	Passed   bool
	Got      string
	Expected string
	Err      error
}

// SuiteResult aggregates the results of one suite run.
type SuiteResult struct {
	Suite     *Suite
	RunID     string
	Results   []Result
	PassCount int
	FailCount int
}

// Runner evaluates check suites against the horo library.
type Runner struct {
	audit log.Logger
}

// NewRunner creates a Runner. A nil audit logger disables auditing.
func NewRunner(audit log.Logger) *Runner {
	if audit == nil {
		audit = log.NoopLogger{}
	}
	return &Runner{audit: audit}
}

// RunSuite evaluates every check in the suite. Each run is assigned a
// fresh run ID used as the audit request ID.
func (r *Runner) RunSuite(suite *Suite) *SuiteResult {
	sr := &SuiteResult{
		Suite: suite,
		RunID: uuid.New().String(),
	}

	for _, c := range suite.Checks {
		result := r.runCheck(sr.RunID, c)
		if result.Passed {
			sr.PassCount++
		} else {
			sr.FailCount++
		}
		sr.Results = append(sr.Results, result)
	}

	return sr
}

// RunAll evaluates multiple suites and returns their results in order.
func (r *Runner) RunAll(suites []*Suite) []*SuiteResult {
	results := make([]*SuiteResult, 0, len(suites))
	for _, suite := range suites {
		results = append(results, r.RunSuite(suite))
	}
	return results
}

func (r *Runner) runCheck(runID string, c Check) Result {
	switch c.Op {
	case OpParseRFC2822:
		return r.runParse(runID, c, log.OpParseRFC2822, datetext.ParseRFC2822)
	case OpParseISO8601:
		return r.runParse(runID, c, log.OpParseISO8601, datetext.ParseISO8601)
	case OpLeapYear:
		return r.runLeapYear(runID, c)
	case OpTimeSpan:
		return r.runTimeSpan(runID, c)
	case OpClockAngle:
		return r.runClockAngle(runID, c)
	default:
		// Loader rejects unknown ops; this is unreachable for loaded suites.
		return Result{Check: c, Err: fmt.Errorf("unknown op %q", c.Op)}
	}
}

func (r *Runner) runParse(runID string, c Check, op log.Operation, parse func(string) (time.Time, error)) Result {
	got, err := parse(c.Text)

	if c.Expect.Fail {
		r.logParse(runID, c, op, got, err)
		if err == nil {
			return Result{Check: c, Got: got.Format(time.RFC3339Nano), Expected: "parse failure"}
		}
		return Result{Check: c, Passed: true, Got: "parse failure", Expected: "parse failure"}
	}

	r.logParse(runID, c, op, got, err)
	if err != nil {
		return Result{Check: c, Expected: c.Expect.Instant, Err: err}
	}

	want, perr := datetext.ParseISO8601(c.Expect.Instant)
	if perr != nil {
		return Result{Check: c, Got: got.Format(time.RFC3339Nano), Expected: c.Expect.Instant,
			Err: fmt.Errorf("bad expectation: %w", perr)}
	}

	return Result{
		Check:    c,
		Passed:   got.Equal(want),
		Got:      got.Format(time.RFC3339Nano),
		Expected: c.Expect.Instant,
	}
}

func (r *Runner) runLeapYear(runID string, c Check) Result {
	instant, err := datetext.ParseISO8601(c.Instant)
	if err != nil {
		return Result{Check: c, Err: fmt.Errorf("bad instant: %w", err)}
	}

	got := calendar.IsLeapYear(instant)
	r.audit.Log(log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: runID,
		Source:    log.SourceCheck,
		Operation: log.OpLeapYear,
		Outcome:   log.OutcomeOK,
		Input:     &log.InputData{Instant: &instant},
		Result:    &log.ResultData{Leap: &got},
	})

	if c.Expect.Leap == nil {
		return Result{Check: c, Got: fmt.Sprintf("%v", got), Err: fmt.Errorf("missing leap expectation")}
	}

	return Result{
		Check:    c,
		Passed:   got == *c.Expect.Leap,
		Got:      fmt.Sprintf("%v", got),
		Expected: fmt.Sprintf("%v", *c.Expect.Leap),
	}
}

func (r *Runner) runTimeSpan(runID string, c Check) Result {
	start, err := datetext.ParseISO8601(c.Start)
	if err != nil {
		return Result{Check: c, Err: fmt.Errorf("bad start: %w", err)}
	}
	end, err := datetext.ParseISO8601(c.End)
	if err != nil {
		return Result{Check: c, Err: fmt.Errorf("bad end: %w", err)}
	}

	got, err := timespan.Format(start, end)

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: runID,
		Source:    log.SourceCheck,
		Operation: log.OpTimeSpan,
		Input:     &log.InputData{Start: &start, End: &end},
	}
	if err != nil {
		event.Outcome = log.OutcomeInvalidInput
		event.Error = &log.ErrorData{Message: err.Error(), Context: "check " + c.ID}
	} else {
		event.Outcome = log.OutcomeOK
		event.Result = &log.ResultData{Formatted: got}
	}
	r.audit.Log(event)

	if c.Expect.Fail {
		if err == nil {
			return Result{Check: c, Got: got, Expected: "rejected span"}
		}
		return Result{Check: c, Passed: true, Got: "rejected span", Expected: "rejected span"}
	}
	if err != nil {
		return Result{Check: c, Expected: c.Expect.Formatted, Err: err}
	}

	return Result{
		Check:    c,
		Passed:   got == c.Expect.Formatted,
		Got:      got,
		Expected: c.Expect.Formatted,
	}
}

func (r *Runner) runClockAngle(runID string, c Check) Result {
	instant, err := datetext.ParseISO8601(c.Instant)
	if err != nil {
		return Result{Check: c, Err: fmt.Errorf("bad instant: %w", err)}
	}

	got := clockangle.Radians(instant)
	r.audit.Log(log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: runID,
		Source:    log.SourceCheck,
		Operation: log.OpClockAngle,
		Outcome:   log.OutcomeOK,
		Input:     &log.InputData{Instant: &instant},
		Result:    &log.ResultData{Radians: &got},
	})

	var want float64
	switch {
	case c.Expect.Radians != nil:
		want = *c.Expect.Radians
	case c.Expect.Degrees != nil:
		want = *c.Expect.Degrees * math.Pi / 180
	default:
		return Result{Check: c, Got: fmt.Sprintf("%g", got), Err: fmt.Errorf("missing angle expectation")}
	}

	tolerance := c.Expect.Tolerance
	if tolerance == 0 {
		tolerance = defaultTolerance
	}

	return Result{
		Check:    c,
		Passed:   math.Abs(got-want) <= tolerance,
		Got:      fmt.Sprintf("%g", got),
		Expected: fmt.Sprintf("%g", want),
	}
}

func (r *Runner) logParse(runID string, c Check, op log.Operation, got time.Time, err error) {
	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: runID,
		Source:    log.SourceCheck,
		Operation: op,
		Input:     &log.InputData{Text: c.Text},
	}
	if err != nil {
		event.Outcome = log.OutcomeParseFailure
		event.Error = &log.ErrorData{Message: err.Error(), Context: "check " + c.ID}
	} else {
		event.Outcome = log.OutcomeOK
		event.Result = &log.ResultData{Instant: &got}
	}
	r.audit.Log(event)
}
