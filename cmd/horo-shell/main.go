// Command horo-shell is an interactive calculator for the horo date
// and time computations.
//
// This command offers a readline-driven prompt with:
//   - RFC 2822 and ISO 8601 text parsing
//   - Leap-year checks
//   - Timespan formatting
//   - Clock-hand angle calculation
//   - Optional CBOR audit logging of every computation
//
// Usage:
//
//	horo-shell [flags]
//
// Flags:
//
//	-audit-log string  Audit log file path (default: no audit log)
//
// Examples:
//
//	# Start the shell
//	horo-shell
//
//	# Record every computation to an audit log
//	horo-shell -audit-log ./session.hlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/horo-tools/horo-go/cmd/horo-shell/interactive"
	"github.com/horo-tools/horo-go/pkg/log"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	auditPath   = flag.String("audit-log", "", "Audit log file path (empty disables auditing)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("horo-shell %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

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

	shell, err := interactive.New(audit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start shell: %v\n", err)
		return 1
	}

	shell.Run()
	return 0
}
