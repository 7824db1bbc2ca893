package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/horo-tools/horo-go/pkg/check"
)

// ChecksAPI handles check suite listing endpoints.
type ChecksAPI struct {
	checkDir string

	// Cache for loaded suites
	mu        sync.RWMutex
	suites    []*check.Suite
	suiteByID map[string]*check.Suite
}

// NewChecksAPI creates a new checks API handler.
func NewChecksAPI(checkDir string) *ChecksAPI {
	return &ChecksAPI{
		checkDir:  checkDir,
		suiteByID: make(map[string]*check.Suite),
	}
}

// loadSuites loads and caches check suites from the check directory.
func (c *ChecksAPI) loadSuites() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Return cached if already loaded
	if c.suites != nil {
		return nil
	}

	suites, err := check.LoadDirectory(c.checkDir)
	if err != nil {
		return err
	}

	sort.Slice(suites, func(i, j int) bool {
		return suites[i].ID < suites[j].ID
	})

	c.suites = suites
	c.suiteByID = make(map[string]*check.Suite, len(suites))
	for _, suite := range suites {
		c.suiteByID[suite.ID] = suite
	}

	return nil
}

// Reload forces a reload of check suites from disk.
func (c *ChecksAPI) Reload() error {
	c.mu.Lock()
	c.suites = nil
	c.suiteByID = make(map[string]*check.Suite)
	c.mu.Unlock()

	return c.loadSuites()
}

// Count returns the number of loaded checks across all suites.
func (c *ChecksAPI) Count() (int, error) {
	if err := c.loadSuites(); err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for _, suite := range c.suites {
		count += len(suite.Checks)
	}
	return count, nil
}

// Suites returns the loaded suites, loading them on first use.
func (c *ChecksAPI) Suites() ([]*check.Suite, error) {
	if err := c.loadSuites(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.suites, nil
}

// HandleList handles GET /api/v1/checks.
func (c *ChecksAPI) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.loadSuites(); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load check suites", err.Error())
		return
	}

	pattern := r.URL.Query().Get("pattern")

	c.mu.RLock()
	defer c.mu.RUnlock()

	var infos []SuiteInfo
	total := 0

	for _, suite := range c.suites {
		info := toSuiteInfo(suite)

		if pattern != "" {
			var filtered []CheckInfo
			for _, ci := range info.Checks {
				if matchPattern(ci.ID, pattern) || matchPattern(ci.Name, pattern) {
					filtered = append(filtered, ci)
				}
			}
			if len(filtered) == 0 {
				continue
			}
			info.Checks = filtered
			info.CheckCount = len(filtered)
		}

		infos = append(infos, info)
		total += info.CheckCount
	}

	resp := SuiteListResponse{
		Suites: infos,
		Total:  total,
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// HandleReload handles POST /api/v1/checks/reload.
func (c *ChecksAPI) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := c.Reload(); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to reload check suites", err.Error())
		return
	}

	c.mu.RLock()
	suiteCount := len(c.suites)
	checkCount := 0
	for _, suite := range c.suites {
		checkCount += len(suite.Checks)
	}
	c.mu.RUnlock()

	resp := map[string]any{
		"status": "reloaded",
		"suites": suiteCount,
		"checks": checkCount,
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

// HandleGet handles GET /api/v1/checks/:id.
func (c *ChecksAPI) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/checks/")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "Suite ID required", "")
		return
	}

	if err := c.loadSuites(); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load check suites", err.Error())
		return
	}

	c.mu.RLock()
	suite, ok := c.suiteByID[id]
	c.mu.RUnlock()

	if !ok {
		writeJSONError(w, http.StatusNotFound, "Check suite not found", id)
		return
	}

	writeJSONResponse(w, http.StatusOK, toSuiteInfo(suite))
}

// toSuiteInfo converts a check.Suite to an API SuiteInfo.
func toSuiteInfo(suite *check.Suite) SuiteInfo {
	info := SuiteInfo{
		ID:          suite.ID,
		Name:        suite.Name,
		Description: suite.Description,
		FileName:    suite.FileName,
		CheckCount:  len(suite.Checks),
		Checks:      make([]CheckInfo, 0, len(suite.Checks)),
	}
	for _, ck := range suite.Checks {
		info.Checks = append(info.Checks, CheckInfo{
			ID:      ck.ID,
			Name:    ck.Name,
			Op:      ck.Op,
			SuiteID: suite.ID,
		})
	}
	return info
}

// matchPattern performs simple glob matching for check filtering.
func matchPattern(name, pattern string) bool {
	if pattern == "*" || pattern == "" {
		return true
	}

	hasPrefix := len(pattern) > 0 && pattern[0] == '*'
	hasSuffix := len(pattern) > 0 && pattern[len(pattern)-1] == '*'

	if hasPrefix && hasSuffix && len(pattern) > 2 {
		// *foo* - contains
		return strings.Contains(name, pattern[1:len(pattern)-1])
	}
	if hasPrefix {
		// *foo - suffix match
		return strings.HasSuffix(name, pattern[1:])
	}
	if hasSuffix {
		// foo* - prefix match
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}

	return name == pattern
}

// writeJSONResponse writes a JSON response.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	resp := ErrorResponse{
		Error:   message,
		Details: details,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
