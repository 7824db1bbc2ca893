package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadError describes a failure to load or validate a suite file.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", e.File, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseSuite parses a suite from YAML bytes.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	// Validate required fields
	if suite.ID == "" {
		return nil, &LoadError{
			Message: "suite ID is required",
		}
	}

	if len(suite.Checks) == 0 {
		return nil, &LoadError{
			Message: "suite must have at least one check",
		}
	}

	for i, c := range suite.Checks {
		if c.Op == "" {
			return nil, &LoadError{
				Message: fmt.Sprintf("check %d: op is required", i),
			}
		}
		if !knownOps[c.Op] {
			return nil, &LoadError{
				Message: fmt.Sprintf("check %d: unknown op %q", i, c.Op),
			}
		}
	}

	return &suite, nil
}

// LoadSuite loads a suite from a file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	suite, err := ParseSuite(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	suite.FileName = filepath.Base(path)
	return suite, nil
}

// LoadDirectory loads all suites from a directory.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*Suite, error) {
	var suites []*Suite

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		suite, err := LoadSuite(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		suites = append(suites, suite)
	}

	return suites, nil
}
