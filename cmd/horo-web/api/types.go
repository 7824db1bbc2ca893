// Package api provides HTTP API handlers for the horo web frontend.
package api

import "time"

// CheckInfo represents a single check in API responses.
type CheckInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Op      string `json:"op"`
	SuiteID string `json:"suite_id,omitempty"`
}

// SuiteInfo represents a check suite loaded from a single file.
type SuiteInfo struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	FileName    string      `json:"file_name"`
	CheckCount  int         `json:"check_count"`
	Checks      []CheckInfo `json:"checks"`
}

// SuiteListResponse is the response for GET /api/v1/checks.
type SuiteListResponse struct {
	Suites []SuiteInfo `json:"suites"`
	Total  int         `json:"total"`
}

// RunRequest is the request body for POST /api/v1/runs.
type RunRequest struct {
	Pattern string `json:"pattern,omitempty"`
}

// Run represents a check run in API responses.
type Run struct {
	ID          string     `json:"id"`
	Pattern     string     `json:"pattern,omitempty"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	PassCount   int        `json:"pass_count"`
	FailCount   int        `json:"fail_count"`
	TotalCount  int        `json:"total_count"`
	Duration    string     `json:"duration,omitempty"`
}

// RunListResponse is the response for GET /api/v1/runs.
type RunListResponse struct {
	Runs  []Run `json:"runs"`
	Total int   `json:"total"`
}

// RunDetailResponse is the response for GET /api/v1/runs/:id.
type RunDetailResponse struct {
	Run
	Results []CheckResult `json:"results,omitempty"`
}

// CheckResult represents a single check result within a run.
type CheckResult struct {
	SuiteID   string `json:"suite_id"`
	CheckID   string `json:"check_id"`
	CheckName string `json:"check_name,omitempty"`
	Op        string `json:"op"`
	Status    string `json:"status"`
	Got       string `json:"got,omitempty"`
	Expected  string `json:"expected,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ParseRequest is the request body for POST /api/v1/parse.
type ParseRequest struct {
	Text   string `json:"text"`
	Format string `json:"format,omitempty"` // rfc2822, iso8601, or empty for both
}

// ParseResponse is the response for POST /api/v1/parse.
type ParseResponse struct {
	Instant    time.Time `json:"instant"`
	UnixMillis int64     `json:"unix_millis"`
}

// LeapYearRequest is the request body for POST /api/v1/leap-year.
type LeapYearRequest struct {
	Instant string `json:"instant,omitempty"`
	Year    *int   `json:"year,omitempty"`
}

// LeapYearResponse is the response for POST /api/v1/leap-year.
type LeapYearResponse struct {
	Year int  `json:"year"`
	Leap bool `json:"leap"`
}

// TimeSpanRequest is the request body for POST /api/v1/timespan.
type TimeSpanRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeSpanResponse is the response for POST /api/v1/timespan.
type TimeSpanResponse struct {
	Formatted string `json:"formatted"`
	Millis    int64  `json:"millis"`
}

// ClockAngleRequest is the request body for POST /api/v1/clock-angle.
// Either an instant or an hour/minute pair must be given.
type ClockAngleRequest struct {
	Instant string `json:"instant,omitempty"`
	Hour    *int   `json:"hour,omitempty"`
	Minute  *int   `json:"minute,omitempty"`
}

// ClockAngleResponse is the response for POST /api/v1/clock-angle.
type ClockAngleResponse struct {
	Radians float64 `json:"radians"`
	Degrees float64 `json:"degrees"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RunStatus constants.
const (
	RunStatusPending   = "pending"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// CheckStatus constants.
const (
	CheckStatusPassed = "passed"
	CheckStatusFailed = "failed"
	CheckStatusError  = "error"
)
