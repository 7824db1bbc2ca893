package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newRunsAPI(t *testing.T) *RunsAPI {
	t.Helper()

	store, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	checks := NewChecksAPI(writeSuiteDir(t))
	return NewRunsAPI(store, checks, nil)
}

func createRun(t *testing.T, runs *RunsAPI, body string) RunDetailResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(body))
	w := httptest.NewRecorder()

	runs.HandleRuns(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp RunDetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return resp
}

func TestCreateRunExecutesSynchronously(t *testing.T) {
	runs := newRunsAPI(t)

	resp := createRun(t, runs, `{}`)

	if resp.Status != RunStatusCompleted {
		t.Errorf("Expected status 'completed', got %q", resp.Status)
	}
	if resp.TotalCount != 3 {
		t.Errorf("Expected 3 checks, got %d", resp.TotalCount)
	}
	if resp.PassCount != 3 || resp.FailCount != 0 {
		t.Errorf("Expected 3/0 pass/fail, got %d/%d", resp.PassCount, resp.FailCount)
	}
	if len(resp.Results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(resp.Results))
	}
	if resp.ID == "" {
		t.Error("Expected a run ID")
	}
}

func TestCreateRunWithPattern(t *testing.T) {
	runs := newRunsAPI(t)

	resp := createRun(t, runs, `{"pattern": "rfc-*"}`)

	if resp.TotalCount != 1 {
		t.Fatalf("Expected 1 check, got %d", resp.TotalCount)
	}
	if resp.Results[0].CheckID != "rfc-basic" {
		t.Errorf("Expected 'rfc-basic', got %q", resp.Results[0].CheckID)
	}
	if resp.Results[0].Status != CheckStatusPassed {
		t.Errorf("Expected passed, got %q", resp.Results[0].Status)
	}
}

func TestCreateRunNoMatches(t *testing.T) {
	runs := newRunsAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", strings.NewReader(`{"pattern": "nothing-*"}`))
	w := httptest.NewRecorder()

	runs.HandleRuns(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestListRuns(t *testing.T) {
	runs := newRunsAPI(t)

	createRun(t, runs, `{}`)
	createRun(t, runs, `{"pattern": "leap-*"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil)
	w := httptest.NewRecorder()

	runs.HandleRuns(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp RunListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Total != 2 {
		t.Errorf("Expected 2 runs, got %d", resp.Total)
	}
}

func TestGetRunByID(t *testing.T) {
	runs := newRunsAPI(t)

	created := createRun(t, runs, `{}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+created.ID, nil)
	w := httptest.NewRecorder()

	runs.HandleRunByID(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp RunDetailResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.ID != created.ID {
		t.Errorf("Expected run %q, got %q", created.ID, resp.ID)
	}
	if len(resp.Results) != 3 {
		t.Errorf("Expected 3 stored results, got %d", len(resp.Results))
	}
}

func TestGetRunNotFound(t *testing.T) {
	runs := newRunsAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/nonexistent", nil)
	w := httptest.NewRecorder()

	runs.HandleRunByID(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestDeleteRun(t *testing.T) {
	runs := newRunsAPI(t)

	created := createRun(t, runs, `{}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/runs/"+created.ID, nil)
	w := httptest.NewRecorder()

	runs.HandleRunByID(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+created.ID, nil)
	w = httptest.NewRecorder()
	runs.HandleRunByID(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", w.Code)
	}
}

func TestRunRecordsFailures(t *testing.T) {
	store, err := NewStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	dir := t.TempDir()
	failing := `
id: failing
checks:
  - id: wrong-leap
    op: leap_year
    instant: "1900-06-15T00:00:00Z"
    expect:
      leap: true
`
	if err := os.WriteFile(filepath.Join(dir, "failing.yaml"), []byte(failing), 0644); err != nil {
		t.Fatal(err)
	}

	runs := NewRunsAPI(store, NewChecksAPI(dir), nil)

	resp := createRun(t, runs, `{}`)

	if resp.FailCount != 1 {
		t.Errorf("Expected 1 failure, got %d", resp.FailCount)
	}
	if resp.Results[0].Status != CheckStatusFailed {
		t.Errorf("Expected failed status, got %q", resp.Results[0].Status)
	}
	if resp.Results[0].Got != "false" || resp.Results[0].Expected != "true" {
		t.Errorf("Expected got/expected false/true, got %q/%q", resp.Results[0].Got, resp.Results[0].Expected)
	}
}
