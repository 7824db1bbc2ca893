// Package log provides structured audit logging for horo computations.
//
// This package defines the Logger interface and Event types for recording
// every computation performed through the horo frontends (shell, web,
// check runner). It is separate from operational logging (slog) - the
// audit trail is a complete machine-readable record for later analysis.
//
// # Basic Usage
//
// Frontends configure auditing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	audit := log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	audit, _ := log.NewFileLogger("/var/log/horo/audit.hlog")
//
//	// Both: use MultiLogger
//	audit := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Audit files use CBOR encoding with .hlog extension. The horo-log CLI
// tool provides viewing, filtering, and export capabilities.
package log
