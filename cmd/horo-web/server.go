package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/horo-tools/horo-go/cmd/horo-web/api"
	"github.com/horo-tools/horo-go/pkg/log"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port     int
	CheckDir string
	DBPath   string
	Version  string
	Audit    log.Logger
}

// Server is the HTTP server for the horo computation frontend.
type Server struct {
	config     ServerConfig
	mux        *http.ServeMux
	server     *http.Server
	store      *api.Store
	checksAPI  *api.ChecksAPI
	runsAPI    *api.RunsAPI
	computeAPI *api.ComputeAPI
}

// NewServer creates a new server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	store, err := api.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	checksAPI := api.NewChecksAPI(cfg.CheckDir)
	runsAPI := api.NewRunsAPI(store, checksAPI, cfg.Audit)
	computeAPI := api.NewComputeAPI(cfg.Audit)

	s := &Server{
		config:     cfg,
		mux:        http.NewServeMux(),
		store:      store,
		checksAPI:  checksAPI,
		runsAPI:    runsAPI,
		computeAPI: computeAPI,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.mux,
	}

	return s, nil
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/info", s.handleInfo)

	// Check suite routes
	s.mux.HandleFunc("/api/v1/checks", s.checksAPI.HandleList)
	s.mux.HandleFunc("/api/v1/checks/reload", s.checksAPI.HandleReload)
	s.mux.HandleFunc("/api/v1/checks/", s.checksAPI.HandleGet)

	// Run routes
	s.mux.HandleFunc("/api/v1/runs", s.runsAPI.HandleRuns)
	s.mux.HandleFunc("/api/v1/runs/", s.runsAPI.HandleRunByID)

	// Direct computation routes
	s.mux.HandleFunc("/api/v1/parse", s.computeAPI.HandleParse)
	s.mux.HandleFunc("/api/v1/leap-year", s.computeAPI.HandleLeapYear)
	s.mux.HandleFunc("/api/v1/timespan", s.computeAPI.HandleTimeSpan)
	s.mux.HandleFunc("/api/v1/clock-angle", s.computeAPI.HandleClockAngle)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version := s.config.Version
	if version == "" {
		version = "dev"
	}

	resp := map[string]string{
		"status":  "ok",
		"version": version,
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleInfo returns server information.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checkCount, _ := s.checksAPI.Count()
	runCount, _ := s.store.CountRuns()

	resp := map[string]int{
		"check_count": checkCount,
		"run_count":   runCount,
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Close shuts down the server and closes the store.
func (s *Server) Close() error {
	if s.store != nil {
		s.store.Close()
	}
	return nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
