package check

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validSuite = `
id: core-parse
name: Core parsing checks
description: RFC 2822 and ISO 8601 text parsing
checks:
  - id: rfc-basic
    name: RFC 1123 date
    op: parse_rfc2822
    text: "Thu, 21 Dec 2000 16:01:07 +0200"
    expect:
      instant: "2000-12-21T16:01:07+02:00"
  - id: iso-basic
    op: parse_iso8601
    text: "2011-10-10T14:48:00Z"
    expect:
      instant: "2011-10-10T14:48:00Z"
`

func TestParseSuite(t *testing.T) {
	suite, err := ParseSuite([]byte(validSuite))
	if err != nil {
		t.Fatalf("ParseSuite() error = %v", err)
	}

	if suite.ID != "core-parse" {
		t.Errorf("ID = %q, want %q", suite.ID, "core-parse")
	}
	if len(suite.Checks) != 2 {
		t.Fatalf("len(Checks) = %d, want 2", len(suite.Checks))
	}
	if suite.Checks[0].Op != OpParseRFC2822 {
		t.Errorf("Checks[0].Op = %q, want %q", suite.Checks[0].Op, OpParseRFC2822)
	}
	if suite.Checks[1].Expect.Instant != "2011-10-10T14:48:00Z" {
		t.Errorf("Checks[1].Expect.Instant = %q", suite.Checks[1].Expect.Instant)
	}
}

func TestParseSuiteValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", "name: no id\nchecks:\n  - id: c\n    op: leap_year\n"},
		{"no checks", "id: empty\nname: empty\n"},
		{"missing op", "id: s\nchecks:\n  - id: c\n    text: hi\n"},
		{"unknown op", "id: s\nchecks:\n  - id: c\n    op: phase_of_moon\n"},
		{"bad yaml", "id: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSuite([]byte(tt.data)); err == nil {
				t.Error("ParseSuite() expected error, got nil")
			}
		})
	}
}

// TestParseSuiteOpNames pins the literal op names accepted in suite
// files; the doc comment and shipped suites spell them the same way.
func TestParseSuiteOpNames(t *testing.T) {
	const suite = `
id: all-ops
checks:
  - id: c1
    op: parse_rfc2822
    text: "Thu, 21 Dec 2000 16:01:07 +0200"
  - id: c2
    op: parse_iso8601
    text: "2011-10-10T14:48:00Z"
  - id: c3
    op: leap_year
    instant: "2000-01-01T00:00:00Z"
  - id: c4
    op: timespan
    start: "2024-03-01T01:02:03Z"
    end: "2024-03-01T02:03:04Z"
  - id: c5
    op: clock_angle
    instant: "2024-01-01T03:00:00Z"
`
	parsed, err := ParseSuite([]byte(suite))
	if err != nil {
		t.Fatalf("ParseSuite() error = %v", err)
	}

	want := []string{OpParseRFC2822, OpParseISO8601, OpLeapYear, OpTimeSpan, OpClockAngle}
	for i, op := range want {
		if parsed.Checks[i].Op != op {
			t.Errorf("Checks[%d].Op = %q, want %q", i, parsed.Checks[i].Op, op)
		}
	}
}

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "core.yaml")
	if err := os.WriteFile(path, []byte(validSuite), 0o644); err != nil {
		t.Fatal(err)
	}

	suite, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite() error = %v", err)
	}
	if suite.FileName != "core.yaml" {
		t.Errorf("FileName = %q, want %q", suite.FileName, "core.yaml")
	}
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadSuite() expected error for missing file")
	}

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("error type = %T, want *LoadError", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.yaml":    validSuite,
		"b.yml":     "id: b\nchecks:\n  - id: c\n    op: leap_year\n    instant: \"2000-01-01T00:00:00Z\"\n    expect:\n      leap: true\n",
		"notes.txt": "ignored",
		"README.md": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	suites, err := LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if len(suites) != 2 {
		t.Fatalf("len(suites) = %d, want 2", len(suites))
	}
}

func TestLoadDirectoryBadSuite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDirectory(dir); err == nil {
		t.Error("LoadDirectory() expected error for invalid suite")
	}
}
