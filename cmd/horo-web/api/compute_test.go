package api

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/horo-tools/horo-go/pkg/log"
)

// auditCapture records audit events emitted by the handlers.
type auditCapture struct {
	events []log.Event
}

func (a *auditCapture) Log(event log.Event) {
	a.events = append(a.events, event)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleParse(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantInstant string
	}{
		{
			name:        "rfc2822",
			body:        `{"text": "Thu, 21 Dec 2000 16:01:07 +0200", "format": "rfc2822"}`,
			wantStatus:  http.StatusOK,
			wantInstant: "2000-12-21T14:01:07Z",
		},
		{
			name:        "iso8601",
			body:        `{"text": "2011-10-10T14:48:00Z", "format": "iso8601"}`,
			wantStatus:  http.StatusOK,
			wantInstant: "2011-10-10T14:48:00Z",
		},
		{
			name:        "auto detects iso",
			body:        `{"text": "2011-10-10T14:48:00Z"}`,
			wantStatus:  http.StatusOK,
			wantInstant: "2011-10-10T14:48:00Z",
		},
		{
			name:        "auto detects rfc",
			body:        `{"text": "Thu, 21 Dec 2000 16:01:07 +0200", "format": "auto"}`,
			wantStatus:  http.StatusOK,
			wantInstant: "2000-12-21T14:01:07Z",
		},
		{
			name:       "unparseable",
			body:       `{"text": "not a date", "format": "iso8601"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing text",
			body:       `{"format": "iso8601"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown format",
			body:       `{"text": "2011-10-10", "format": "stardate"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	compute := NewComputeAPI(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, compute.HandleParse, "/api/v1/parse", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantInstant == "" {
				return
			}

			var resp ParseResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}

			want, err := time.Parse(time.RFC3339, tt.wantInstant)
			if err != nil {
				t.Fatal(err)
			}
			if !resp.Instant.Equal(want) {
				t.Errorf("Expected instant %v, got %v", want, resp.Instant)
			}
			if resp.UnixMillis != want.UnixMilli() {
				t.Errorf("Expected unix millis %d, got %d", want.UnixMilli(), resp.UnixMillis)
			}
		})
	}
}

func TestHandleParseAudit(t *testing.T) {
	audit := &auditCapture{}
	compute := NewComputeAPI(audit)

	postJSON(t, compute.HandleParse, "/api/v1/parse", `{"text": "2011-10-10T14:48:00Z", "format": "iso8601"}`)
	postJSON(t, compute.HandleParse, "/api/v1/parse", `{"text": "garbage", "format": "iso8601"}`)

	if len(audit.events) != 2 {
		t.Fatalf("Expected 2 audit events, got %d", len(audit.events))
	}

	if audit.events[0].Outcome != log.OutcomeOK {
		t.Errorf("Expected first event OK, got %v", audit.events[0].Outcome)
	}
	if audit.events[1].Outcome != log.OutcomeParseFailure {
		t.Errorf("Expected second event parse failure, got %v", audit.events[1].Outcome)
	}
	if audit.events[0].Source != log.SourceWeb {
		t.Errorf("Expected web source, got %v", audit.events[0].Source)
	}
	if audit.events[0].RequestID == audit.events[1].RequestID {
		t.Error("Expected distinct request IDs per request")
	}
}

func TestHandleParseAutoAttribution(t *testing.T) {
	audit := &auditCapture{}
	compute := NewComputeAPI(audit)

	postJSON(t, compute.HandleParse, "/api/v1/parse", `{"text": "2011-10-10T14:48:00Z"}`)
	postJSON(t, compute.HandleParse, "/api/v1/parse", `{"text": "Thu, 21 Dec 2000 16:01:07 +0200", "format": "auto"}`)

	if len(audit.events) != 2 {
		t.Fatalf("Expected 2 audit events, got %d", len(audit.events))
	}
	if audit.events[0].Operation != log.OpParseISO8601 {
		t.Errorf("Expected ISO 8601 attribution, got %v", audit.events[0].Operation)
	}
	if audit.events[1].Operation != log.OpParseRFC2822 {
		t.Errorf("Expected RFC 2822 attribution, got %v", audit.events[1].Operation)
	}
}

func TestHandleLeapYear(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantYear   int
		wantLeap   bool
	}{
		{"leap by year", `{"year": 2000}`, http.StatusOK, 2000, true},
		{"century non-leap", `{"year": 1900}`, http.StatusOK, 1900, false},
		{"leap by instant", `{"instant": "2012-07-01T00:00:00Z"}`, http.StatusOK, 2012, true},
		{"bad instant", `{"instant": "not a date"}`, http.StatusBadRequest, 0, false},
		{"empty request", `{}`, http.StatusBadRequest, 0, false},
	}

	compute := NewComputeAPI(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, compute.HandleLeapYear, "/api/v1/leap-year", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp LeapYearResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if resp.Year != tt.wantYear || resp.Leap != tt.wantLeap {
				t.Errorf("Got %d/%v, want %d/%v", resp.Year, resp.Leap, tt.wantYear, tt.wantLeap)
			}
		})
	}
}

func TestHandleTimeSpan(t *testing.T) {
	compute := NewComputeAPI(nil)

	w := postJSON(t, compute.HandleTimeSpan, "/api/v1/timespan",
		`{"start": "2024-03-01T01:02:03Z", "end": "2024-03-01T02:03:04.500Z"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp TimeSpanResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Formatted != "01:01:01.500" {
		t.Errorf("Expected '01:01:01.500', got %q", resp.Formatted)
	}
	if resp.Millis != 3661500 {
		t.Errorf("Expected 3661500 ms, got %d", resp.Millis)
	}
}

func TestHandleTimeSpanNegative(t *testing.T) {
	audit := &auditCapture{}
	compute := NewComputeAPI(audit)

	w := postJSON(t, compute.HandleTimeSpan, "/api/v1/timespan",
		`{"start": "2024-03-01T12:00:00Z", "end": "2024-03-01T11:00:00Z"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	if len(audit.events) != 1 || audit.events[0].Outcome != log.OutcomeInvalidInput {
		t.Errorf("Expected one invalid-input audit event, got %+v", audit.events)
	}
}

func TestHandleTimeSpanBadBounds(t *testing.T) {
	compute := NewComputeAPI(nil)

	for _, body := range []string{
		`{"start": "garbage", "end": "2024-03-01T11:00:00Z"}`,
		`{"start": "2024-03-01T11:00:00Z", "end": "garbage"}`,
	} {
		w := postJSON(t, compute.HandleTimeSpan, "/api/v1/timespan", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestHandleClockAngle(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantRadians float64
	}{
		{"instant at three", `{"instant": "2024-01-01T03:00:00Z"}`, http.StatusOK, math.Pi / 2},
		{"instant at six pm", `{"instant": "2024-01-01T18:00:00Z"}`, http.StatusOK, math.Pi},
		{"hour and minute", `{"hour": 12, "minute": 30}`, http.StatusOK, 165 * math.Pi / 180},
		{"bad instant", `{"instant": "garbage"}`, http.StatusBadRequest, 0},
		{"hour out of range", `{"hour": 24, "minute": 0}`, http.StatusBadRequest, 0},
		{"minute out of range", `{"hour": 3, "minute": 60}`, http.StatusBadRequest, 0},
		{"empty request", `{}`, http.StatusBadRequest, 0},
	}

	compute := NewComputeAPI(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, compute.HandleClockAngle, "/api/v1/clock-angle", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp ClockAngleResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}

			if math.Abs(resp.Radians-tt.wantRadians) > 1e-9 {
				t.Errorf("Expected %v radians, got %v", tt.wantRadians, resp.Radians)
			}
			wantDegrees := tt.wantRadians * 180 / math.Pi
			if math.Abs(resp.Degrees-wantDegrees) > 1e-9 {
				t.Errorf("Expected %v degrees, got %v", wantDegrees, resp.Degrees)
			}
		})
	}
}

func TestComputeMethodNotAllowed(t *testing.T) {
	compute := NewComputeAPI(nil)

	handlers := map[string]http.HandlerFunc{
		"/api/v1/parse":       compute.HandleParse,
		"/api/v1/leap-year":   compute.HandleLeapYear,
		"/api/v1/timespan":    compute.HandleTimeSpan,
		"/api/v1/clock-angle": compute.HandleClockAngle,
	}

	for path, handler := range handlers {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		handler(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("GET %s: expected status 405, got %d", path, w.Code)
		}
	}
}
