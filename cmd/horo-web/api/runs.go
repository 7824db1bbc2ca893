package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/horo-tools/horo-go/pkg/check"
	"github.com/horo-tools/horo-go/pkg/log"
)

// RunsAPI handles check run endpoints. Runs execute synchronously:
// checks are pure computations, so a full run completes in milliseconds.
type RunsAPI struct {
	store  *Store
	checks *ChecksAPI
	audit  log.Logger
}

// NewRunsAPI creates a new runs API handler. A nil audit logger
// disables audit logging for runs.
func NewRunsAPI(store *Store, checks *ChecksAPI, audit log.Logger) *RunsAPI {
	if audit == nil {
		audit = log.NoopLogger{}
	}
	return &RunsAPI{
		store:  store,
		checks: checks,
		audit:  audit,
	}
}

// HandleRuns handles GET and POST /api/v1/runs.
func (r *RunsAPI) HandleRuns(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		r.handleListRuns(w, req)
	case http.MethodPost:
		r.handleCreateRun(w, req)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRunByID handles GET and DELETE /api/v1/runs/:id.
func (r *RunsAPI) HandleRunByID(w http.ResponseWriter, req *http.Request) {
	id := strings.TrimPrefix(req.URL.Path, "/api/v1/runs/")
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, "Run ID required", "")
		return
	}

	switch req.Method {
	case http.MethodGet:
		r.handleGetRun(w, req, id)
	case http.MethodDelete:
		r.handleDeleteRun(w, req, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListRuns handles GET /api/v1/runs.
func (r *RunsAPI) handleListRuns(w http.ResponseWriter, req *http.Request) {
	runs, err := r.store.ListRuns(100, 0)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to list runs", err.Error())
		return
	}

	resp := RunListResponse{
		Runs:  runs,
		Total: len(runs),
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// handleCreateRun handles POST /api/v1/runs.
func (r *RunsAPI) handleCreateRun(w http.ResponseWriter, req *http.Request) {
	var runReq RunRequest
	if req.Body != nil && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&runReq); err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}

	suites, err := r.checks.Suites()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load check suites", err.Error())
		return
	}

	selected := filterSuites(suites, runReq.Pattern)
	if len(selected) == 0 {
		writeJSONError(w, http.StatusBadRequest, "No checks match pattern", runReq.Pattern)
		return
	}

	runID := uuid.New().String()
	now := time.Now()

	run := &Run{
		ID:        runID,
		Pattern:   runReq.Pattern,
		Status:    RunStatusPending,
		StartedAt: &now,
	}

	if err := r.store.CreateRun(run); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to create run", err.Error())
		return
	}

	results := r.executeRun(runID, selected)

	storedRun, err := r.store.GetRun(runID)
	if err != nil || storedRun == nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to load completed run", runID)
		return
	}

	resp := RunDetailResponse{
		Run:     *storedRun,
		Results: results,
	}

	writeJSONResponse(w, http.StatusCreated, resp)
}

// executeRun evaluates the selected suites and records results.
func (r *RunsAPI) executeRun(runID string, suites []*check.Suite) []CheckResult {
	runner := check.NewRunner(r.audit)

	var results []CheckResult
	passCount, failCount := 0, 0

	for _, suite := range suites {
		sr := runner.RunSuite(suite)
		passCount += sr.PassCount
		failCount += sr.FailCount

		for _, res := range sr.Results {
			cr := checkResultToAPI(suite.ID, res)
			r.store.AddCheckResult(runID, &cr)
			results = append(results, cr)
		}
	}

	r.store.CompleteRun(runID, passCount, failCount, passCount+failCount, "")
	return results
}

// handleGetRun handles GET /api/v1/runs/:id.
func (r *RunsAPI) handleGetRun(w http.ResponseWriter, req *http.Request, id string) {
	run, err := r.store.GetRun(id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to get run", err.Error())
		return
	}

	if run == nil {
		writeJSONError(w, http.StatusNotFound, "Run not found", id)
		return
	}

	results, err := r.store.GetRunResults(id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to get run results", err.Error())
		return
	}

	resp := RunDetailResponse{
		Run:     *run,
		Results: results,
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

// handleDeleteRun handles DELETE /api/v1/runs/:id.
func (r *RunsAPI) handleDeleteRun(w http.ResponseWriter, req *http.Request, id string) {
	run, err := r.store.GetRun(id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to get run", err.Error())
		return
	}
	if run == nil {
		writeJSONError(w, http.StatusNotFound, "Run not found", id)
		return
	}

	if err := r.store.DeleteRun(id); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete run", err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// filterSuites returns suites reduced to the checks matching pattern.
// Suites left with no matching checks are dropped.
func filterSuites(suites []*check.Suite, pattern string) []*check.Suite {
	if pattern == "" {
		return suites
	}

	var selected []*check.Suite
	for _, suite := range suites {
		var checks []check.Check
		for _, ck := range suite.Checks {
			if matchPattern(ck.ID, pattern) || matchPattern(ck.Name, pattern) {
				checks = append(checks, ck)
			}
		}
		if len(checks) == 0 {
			continue
		}

		filtered := *suite
		filtered.Checks = checks
		selected = append(selected, &filtered)
	}
	return selected
}

// checkResultToAPI converts a check.Result to an API CheckResult.
func checkResultToAPI(suiteID string, res check.Result) CheckResult {
	cr := CheckResult{
		SuiteID:   suiteID,
		CheckID:   res.Check.ID,
		CheckName: res.Check.Name,
		Op:        res.Check.Op,
		Got:       res.Got,
		Expected:  res.Expected,
	}

	switch {
	case res.Err != nil:
		cr.Status = CheckStatusError
		cr.Error = res.Err.Error()
	case res.Passed:
		cr.Status = CheckStatusPassed
	default:
		cr.Status = CheckStatusFailed
	}

	return cr
}
