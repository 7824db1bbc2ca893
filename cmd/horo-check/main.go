// Command horo-check runs YAML check suites against the horo
// computation packages.
//
// Usage:
//
//	horo-check [flags] <suite.yaml|directory> [...]
//
// Flags:
//
//	-pattern string    Only run checks whose ID or name matches
//	-verbose           Print every check, not only failures
//	-json              Output results as JSON
//	-audit-log string  Audit log file path (CBOR format)
//
// Examples:
//
//	# Run every suite in a directory
//	horo-check ./testdata/suites
//
//	# Run a single suite file with full output
//	horo-check -verbose ./testdata/suites/core.yaml
//
//	# Run only parsing checks
//	horo-check -pattern "rfc-*" ./testdata/suites
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/horo-tools/horo-go/pkg/check"
	"github.com/horo-tools/horo-go/pkg/log"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	pattern     = flag.String("pattern", "", "Only run checks whose ID or name matches")
	verbose     = flag.Bool("verbose", false, "Print every check, not only failures")
	jsonOut     = flag.Bool("json", false, "Output results as JSON")
	auditPath   = flag.String("audit-log", "", "Audit log file path (CBOR format)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("horo-check %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one suite file or directory is required")
		flag.Usage()
		return 1
	}

	suites, err := loadSuites(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *pattern != "" {
		suites = filterSuites(suites, *pattern)
	}
	if len(suites) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no checks to run")
		return 1
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

	runner := check.NewRunner(audit)
	results := runner.RunAll(suites)

	if *jsonOut {
		return printJSON(results)
	}
	return printText(results)
}

// loadSuites loads every named suite file or directory of suites.
func loadSuites(args []string) ([]*check.Suite, error) {
	var suites []*check.Suite

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			dirSuites, err := check.LoadDirectory(arg)
			if err != nil {
				return nil, err
			}
			suites = append(suites, dirSuites...)
			continue
		}

		suite, err := check.LoadSuite(arg)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}

	return suites, nil
}

// filterSuites reduces suites to the checks matching pattern, dropping
// suites left empty.
func filterSuites(suites []*check.Suite, pattern string) []*check.Suite {
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

// matchPattern performs simple glob matching for check filtering.
func matchPattern(name, pattern string) bool {
	if pattern == "*" || pattern == "" {
		return true
	}

	hasPrefix := pattern[0] == '*'
	hasSuffix := pattern[len(pattern)-1] == '*'

	if hasPrefix && hasSuffix && len(pattern) > 2 {
		return strings.Contains(name, pattern[1:len(pattern)-1])
	}
	if hasPrefix {
		return strings.HasSuffix(name, pattern[1:])
	}
	if hasSuffix {
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}

	return name == pattern
}

// printText prints a human-readable summary and returns the exit code.
func printText(results []*check.SuiteResult) int {
	passTotal, failTotal := 0, 0

	for _, sr := range results {
		name := sr.Suite.Name
		if name == "" {
			name = sr.Suite.ID
		}
		fmt.Printf("%s (%s)\n", name, sr.Suite.ID)

		for _, res := range sr.Results {
			switch {
			case res.Err != nil:
				fmt.Printf("  ERROR %s: %v\n", res.Check.ID, res.Err)
			case res.Passed:
				if *verbose {
					fmt.Printf("  PASS  %s\n", res.Check.ID)
				}
			default:
				fmt.Printf("  FAIL  %s: got %q, expected %q\n", res.Check.ID, res.Got, res.Expected)
			}
		}

		fmt.Printf("  %d passed, %d failed\n", sr.PassCount, sr.FailCount)
		passTotal += sr.PassCount
		failTotal += sr.FailCount
	}

	fmt.Printf("\nTotal: %d passed, %d failed\n", passTotal, failTotal)

	if failTotal > 0 {
		return 1
	}
	return 0
}

// suiteJSON is the JSON output shape for one suite.
type suiteJSON struct {
	SuiteID   string      `json:"suite_id"`
	RunID     string      `json:"run_id"`
	PassCount int         `json:"pass_count"`
	FailCount int         `json:"fail_count"`
	Checks    []checkJSON `json:"checks"`
}

type checkJSON struct {
	ID       string `json:"id"`
	Op       string `json:"op"`
	Passed   bool   `json:"passed"`
	Got      string `json:"got,omitempty"`
	Expected string `json:"expected,omitempty"`
	Error    string `json:"error,omitempty"`
}

// printJSON prints machine-readable results and returns the exit code.
func printJSON(results []*check.SuiteResult) int {
	var out []suiteJSON
	failTotal := 0

	for _, sr := range results {
		sj := suiteJSON{
			SuiteID:   sr.Suite.ID,
			RunID:     sr.RunID,
			PassCount: sr.PassCount,
			FailCount: sr.FailCount,
		}
		for _, res := range sr.Results {
			cj := checkJSON{
				ID:       res.Check.ID,
				Op:       res.Check.Op,
				Passed:   res.Passed,
				Got:      res.Got,
				Expected: res.Expected,
			}
			if res.Err != nil {
				cj.Error = res.Err.Error()
			}
			sj.Checks = append(sj.Checks, cj)
		}
		out = append(out, sj)
		failTotal += sr.FailCount
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if failTotal > 0 {
		return 1
	}
	return 0
}
