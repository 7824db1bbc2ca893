// Command horo-web provides an HTTP frontend for the horo date and
// time computations.
//
// It offers:
//   - REST API for the four computations (parse, leap-year, timespan,
//     clock-angle)
//   - Check suite listing and execution with SQLite run history
//   - Optional CBOR audit logging of every computation
//
// Usage:
//
//	horo-web [flags]
//
// Flags:
//
//	-port int          HTTP server port (default 8080)
//	-checks string     Check suites directory (default "./testdata/suites")
//	-db string         SQLite database path (default "./horo-web.db")
//	-audit-log string  Audit log file path (default: no audit log)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Start the web server on default port
//	horo-web
//
//	# Start on a custom port with a specific suite directory
//	horo-web -port 9000 -checks /path/to/suites
//
//	# Use an in-memory database (for testing)
//	horo-web -db :memory:
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/horo-tools/horo-go/pkg/log"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	port        = flag.Int("port", 8080, "HTTP server port")
	checkDir    = flag.String("checks", "./testdata/suites", "Check suites directory")
	dbPath      = flag.String("db", "./horo-web.db", "SQLite database path")
	auditPath   = flag.String("audit-log", "", "Audit log file path (empty disables auditing)")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("horo-web %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	// Validate check directory exists
	if info, err := os.Stat(*checkDir); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: check directory %q does not exist or is not a directory\n", *checkDir)
		return 1
	}

	// Configure logging
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)
	if *logLevel == "debug" {
		stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime | stdlog.Lmicroseconds | stdlog.Lshortfile)
	}

	// Open the audit log when requested
	var audit log.Logger = log.NoopLogger{}
	if *auditPath != "" {
		fileLogger, err := log.NewFileLogger(*auditPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open audit log: %v\n", err)
			return 1
		}
		defer fileLogger.Close()
		audit = fileLogger
	}

	cfg := ServerConfig{
		Port:     *port,
		CheckDir: *checkDir,
		DBPath:   *dbPath,
		Version:  Version,
		Audit:    audit,
	}

	srv, err := NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create server: %v\n", err)
		return 1
	}
	defer srv.Close()

	stdlog.Printf("Starting horo-web on http://localhost:%d", *port)
	stdlog.Printf("Check suites: %s", *checkDir)
	stdlog.Printf("Database: %s", *dbPath)
	if *auditPath != "" {
		stdlog.Printf("Audit log: %s", *auditPath)
	}

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		return 1
	}

	return 0
}
