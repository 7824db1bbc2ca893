// Command horo-log is a tool for viewing and analyzing horo audit log files.
//
// Audit files are created when running horo-web, horo-shell, or
// horo-check with the -audit-log flag.
//
// Usage:
//
//	horo-log <command> [flags] <file.hlog>
//
// Commands:
//
//	view     View audit file in human-readable format
//	export   Export audit file to JSON or CSV format
//	stats    Show statistics about the audit file
//
// Examples:
//
//	# View all events
//	horo-log view session.hlog
//
//	# View only failed parses
//	horo-log view --outcome parse_failure session.hlog
//
//	# View only clock-angle computations from the shell
//	horo-log view --source shell --operation clock_angle session.hlog
//
//	# Export to JSONL
//	horo-log export --format jsonl session.hlog
//
//	# Show statistics
//	horo-log stats session.hlog
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/horo-tools/horo-go/cmd/horo-log/commands"
	"github.com/horo-tools/horo-go/pkg/log"
)

const usage = `horo-log - Horo Audit Log Analyzer

Usage:
  horo-log <command> [flags] <file.hlog>

Commands:
  view     View audit file in human-readable format
  export   Export audit file to JSON or CSV format
  stats    Show statistics about the audit file

Use "horo-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `horo-log view - View audit file in human-readable format

Usage:
  horo-log view [flags] <file.hlog>

Flags:
`)
		fs.PrintDefaults()
	}

	source := fs.String("source", "", "Filter by source (shell, web, check)")
	operation := fs.String("operation", "", "Filter by operation (parse_rfc2822, parse_iso8601, leap_year, timespan, clock_angle)")
	outcome := fs.String("outcome", "", "Filter by outcome (ok, parse_failure, invalid_input)")
	requestID := fs.String("request-id", "", "Filter by request ID")
	timeStart := fs.String("time-start", "", "Filter by start time (RFC3339)")
	timeEnd := fs.String("time-end", "", "Filter by end time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: audit file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	// Build filter
	filter := log.Filter{RequestID: *requestID}

	if *source != "" {
		s, err := commands.ParseSourceFlag(*source)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Source = &s
	}

	if *operation != "" {
		op, err := commands.ParseOperationFlag(*operation)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Operation = &op
	}

	if *outcome != "" {
		o, err := commands.ParseOutcomeFlag(*outcome)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		filter.Outcome = &o
	}

	if *timeStart != "" {
		t, err := time.Parse(time.RFC3339, *timeStart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid time-start: %v\n", err)
			os.Exit(1)
		}
		filter.TimeStart = &t
	}

	if *timeEnd != "" {
		t, err := time.Parse(time.RFC3339, *timeEnd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid time-end: %v\n", err)
			os.Exit(1)
		}
		filter.TimeEnd = &t
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `horo-log export - Export audit file to JSON or CSV format

Usage:
  horo-log export [flags] <file.hlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: audit file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `horo-log stats - Show statistics about the audit file

Usage:
  horo-log stats <file.hlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: audit file path required")
		fs.Usage()
		os.Exit(1)
	}

	path := fs.Arg(0)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
