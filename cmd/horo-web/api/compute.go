package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/horo-tools/horo-go/pkg/calendar"
	"github.com/horo-tools/horo-go/pkg/clockangle"
	"github.com/horo-tools/horo-go/pkg/datetext"
	"github.com/horo-tools/horo-go/pkg/log"
	"github.com/horo-tools/horo-go/pkg/timespan"
)

// ComputeAPI handles the direct computation endpoints. Every request
// is assigned a UUID and recorded to the audit log.
type ComputeAPI struct {
	audit log.Logger
}

// NewComputeAPI creates a new compute API handler. A nil audit logger
// disables audit logging.
func NewComputeAPI(audit log.Logger) *ComputeAPI {
	if audit == nil {
		audit = log.NoopLogger{}
	}
	return &ComputeAPI{audit: audit}
}

// HandleParse handles POST /api/v1/parse.
func (c *ComputeAPI) HandleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Text == "" {
		writeJSONError(w, http.StatusBadRequest, "Text is required", "")
		return
	}

	var (
		instant time.Time
		err     error
		op      log.Operation
	)

	switch req.Format {
	case "rfc2822":
		op = log.OpParseRFC2822
		instant, err = datetext.ParseRFC2822(req.Text)
	case "iso8601":
		op = log.OpParseISO8601
		instant, err = datetext.ParseISO8601(req.Text)
	case "", "auto":
		var family datetext.Family
		instant, family, err = datetext.ParseAny(req.Text)
		op = operationForFamily(family)
	default:
		writeJSONError(w, http.StatusBadRequest, "Unknown format", req.Format)
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceWeb,
		Operation: op,
		Input:     &log.InputData{Text: req.Text},
	}

	if err != nil {
		event.Outcome = log.OutcomeParseFailure
		event.Error = &log.ErrorData{Message: err.Error()}
		c.audit.Log(event)

		status := http.StatusBadRequest
		if !errors.Is(err, datetext.ErrUnparseable) {
			status = http.StatusInternalServerError
		}
		writeJSONError(w, status, "Failed to parse text", err.Error())
		return
	}

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Instant: &instant}
	c.audit.Log(event)

	writeJSONResponse(w, http.StatusOK, ParseResponse{
		Instant:    instant,
		UnixMillis: instant.UnixMilli(),
	})
}

// operationForFamily maps the matched textual family to the audit
// operation, so auto-detected parses are attributed to the right parser.
func operationForFamily(f datetext.Family) log.Operation {
	if f == datetext.FamilyRFC2822 {
		return log.OpParseRFC2822
	}
	return log.OpParseISO8601
}

// HandleLeapYear handles POST /api/v1/leap-year.
func (c *ComputeAPI) HandleLeapYear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LeapYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceWeb,
		Operation: log.OpLeapYear,
	}

	var year int
	switch {
	case req.Year != nil:
		year = *req.Year
	case req.Instant != "":
		instant, err := datetext.ParseISO8601(req.Instant)
		if err != nil {
			event.Outcome = log.OutcomeInvalidInput
			event.Input = &log.InputData{Text: req.Instant}
			event.Error = &log.ErrorData{Message: err.Error()}
			c.audit.Log(event)

			writeJSONError(w, http.StatusBadRequest, "Failed to parse instant", err.Error())
			return
		}
		year = instant.Year()
		event.Input = &log.InputData{Instant: &instant}
	default:
		writeJSONError(w, http.StatusBadRequest, "Either year or instant is required", "")
		return
	}

	leap := calendar.LeapYear(year)

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Leap: &leap}
	c.audit.Log(event)

	writeJSONResponse(w, http.StatusOK, LeapYearResponse{
		Year: year,
		Leap: leap,
	})
}

// HandleTimeSpan handles POST /api/v1/timespan.
func (c *ComputeAPI) HandleTimeSpan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TimeSpanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	start, err := datetext.ParseISO8601(req.Start)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse start", err.Error())
		return
	}
	end, err := datetext.ParseISO8601(req.End)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Failed to parse end", err.Error())
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceWeb,
		Operation: log.OpTimeSpan,
		Input:     &log.InputData{Start: &start, End: &end},
	}

	formatted, err := timespan.Format(start, end)
	if err != nil {
		event.Outcome = log.OutcomeInvalidInput
		event.Error = &log.ErrorData{Message: err.Error()}
		c.audit.Log(event)

		writeJSONError(w, http.StatusBadRequest, "Invalid span", err.Error())
		return
	}

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Formatted: formatted}
	c.audit.Log(event)

	writeJSONResponse(w, http.StatusOK, TimeSpanResponse{
		Formatted: formatted,
		Millis:    end.Sub(start).Milliseconds(),
	})
}

// HandleClockAngle handles POST /api/v1/clock-angle.
func (c *ComputeAPI) HandleClockAngle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ClockAngleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	event := log.Event{
		Timestamp: time.Now().UTC(),
		RequestID: uuid.New().String(),
		Source:    log.SourceWeb,
		Operation: log.OpClockAngle,
	}

	var radians float64
	switch {
	case req.Instant != "":
		instant, err := datetext.ParseISO8601(req.Instant)
		if err != nil {
			event.Outcome = log.OutcomeInvalidInput
			event.Input = &log.InputData{Text: req.Instant}
			event.Error = &log.ErrorData{Message: err.Error()}
			c.audit.Log(event)

			writeJSONError(w, http.StatusBadRequest, "Failed to parse instant", err.Error())
			return
		}
		radians = clockangle.Radians(instant)
		event.Input = &log.InputData{Instant: &instant}
	case req.Hour != nil && req.Minute != nil:
		hour, minute := *req.Hour, *req.Minute
		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			writeJSONError(w, http.StatusBadRequest, "Hour must be 0-23 and minute 0-59", "")
			return
		}
		radians = clockangle.FromHourMinute(hour, minute)
	default:
		writeJSONError(w, http.StatusBadRequest, "Either instant or hour/minute is required", "")
		return
	}

	event.Outcome = log.OutcomeOK
	event.Result = &log.ResultData{Radians: &radians}
	c.audit.Log(event)

	writeJSONResponse(w, http.StatusOK, ClockAngleResponse{
		Radians: radians,
		Degrees: radians * 180 / math.Pi,
	})
}
