package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const suiteYAML = `
id: core
name: Core checks
checks:
  - id: rfc-basic
    name: RFC 1123 date
    op: parse_rfc2822
    text: "Thu, 21 Dec 2000 16:01:07 +0200"
    expect:
      instant: "2000-12-21T14:01:07Z"
  - id: leap-2000
    op: leap_year
    instant: "2000-06-15T00:00:00Z"
    expect:
      leap: true
`

const secondSuiteYAML = `
id: angles
name: Clock angles
checks:
  - id: angle-quarter
    op: clock_angle
    instant: "2024-01-01T03:00:00Z"
    expect:
      degrees: 90
`

func writeSuiteDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"core.yaml":   suiteYAML,
		"angles.yaml": secondSuiteYAML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestChecksHandleList(t *testing.T) {
	checks := NewChecksAPI(writeSuiteDir(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks", nil)
	w := httptest.NewRecorder()

	checks.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp SuiteListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(resp.Suites) != 2 {
		t.Fatalf("Expected 2 suites, got %d", len(resp.Suites))
	}
	if resp.Total != 3 {
		t.Errorf("Expected total 3, got %d", resp.Total)
	}

	// Suites are sorted by ID
	if resp.Suites[0].ID != "angles" || resp.Suites[1].ID != "core" {
		t.Errorf("Unexpected suite order: %q, %q", resp.Suites[0].ID, resp.Suites[1].ID)
	}
}

func TestChecksHandleListPattern(t *testing.T) {
	checks := NewChecksAPI(writeSuiteDir(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks?pattern=rfc-*", nil)
	w := httptest.NewRecorder()

	checks.HandleList(w, req)

	var resp SuiteListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.Total != 1 {
		t.Errorf("Expected total 1, got %d", resp.Total)
	}
	if len(resp.Suites) != 1 || resp.Suites[0].ID != "core" {
		t.Errorf("Expected only the core suite, got %+v", resp.Suites)
	}
}

func TestChecksHandleGet(t *testing.T) {
	checks := NewChecksAPI(writeSuiteDir(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks/core", nil)
	w := httptest.NewRecorder()

	checks.HandleGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp SuiteInfo
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp.ID != "core" {
		t.Errorf("Expected suite 'core', got %q", resp.ID)
	}
	if resp.CheckCount != 2 {
		t.Errorf("Expected 2 checks, got %d", resp.CheckCount)
	}
	if resp.FileName != "core.yaml" {
		t.Errorf("Expected file name 'core.yaml', got %q", resp.FileName)
	}
}

func TestChecksHandleGetNotFound(t *testing.T) {
	checks := NewChecksAPI(writeSuiteDir(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checks/absent", nil)
	w := httptest.NewRecorder()

	checks.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestChecksHandleReload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "core.yaml"), []byte(suiteYAML), 0644); err != nil {
		t.Fatal(err)
	}

	checks := NewChecksAPI(dir)
	if count, err := checks.Count(); err != nil || count != 2 {
		t.Fatalf("Count() = %d, %v, want 2, nil", count, err)
	}

	// Add a suite after the initial load; reload should pick it up
	if err := os.WriteFile(filepath.Join(dir, "angles.yaml"), []byte(secondSuiteYAML), 0644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checks/reload", nil)
	w := httptest.NewRecorder()

	checks.HandleReload(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if resp["suites"].(float64) != 2 {
		t.Errorf("Expected 2 suites after reload, got %v", resp["suites"])
	}
	if resp["checks"].(float64) != 3 {
		t.Errorf("Expected 3 checks after reload, got %v", resp["checks"])
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    bool
	}{
		{"rfc-basic", "", true},
		{"rfc-basic", "*", true},
		{"rfc-basic", "rfc-basic", true},
		{"rfc-basic", "rfc-*", true},
		{"rfc-basic", "*basic", true},
		{"rfc-basic", "*c-b*", true},
		{"rfc-basic", "iso-*", false},
		{"rfc-basic", "basic", false},
	}

	for _, tt := range tests {
		if got := matchPattern(tt.name, tt.pattern); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.name, tt.pattern, got, tt.want)
		}
	}
}
