// Package check loads YAML conformance suites and evaluates them
// against the horo computation packages.
//
// A suite file declares a list of checks, each naming one operation
// (parse_rfc2822, parse_iso8601, leap_year, timespan, clock_angle),
// its inputs, and the expected outcome. The Runner evaluates checks
// and optionally records every computation to an audit log.
package check
