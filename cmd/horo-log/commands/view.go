// Package commands implements the horo-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/horo-tools/horo-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [req:id] SOURCE OPERATION OUTCOME
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	reqID := shortenRequestID(event.RequestID)

	fmt.Fprintf(w, "%s [req:%s] %-5s %s %s\n",
		ts, reqID, event.Source.String(), event.Operation.String(), event.Outcome.String())

	if event.Input != nil {
		formatInputDetails(w, event.Input)
	}
	if event.Result != nil {
		formatResultDetails(w, event.Result)
	}
	if event.Error != nil {
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenRequestID returns the first 8 characters of the request ID.
func shortenRequestID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatInputDetails writes the operation arguments.
func formatInputDetails(w io.Writer, in *log.InputData) {
	if in.Text != "" {
		fmt.Fprintf(w, "  Text: %q\n", in.Text)
	}
	if in.Instant != nil {
		fmt.Fprintf(w, "  Instant: %s\n", in.Instant.Format(time.RFC3339Nano))
	}
	if in.Start != nil && in.End != nil {
		fmt.Fprintf(w, "  Span: %s -> %s\n",
			in.Start.Format(time.RFC3339Nano), in.End.Format(time.RFC3339Nano))
	}
}

// formatResultDetails writes the computation output.
func formatResultDetails(w io.Writer, res *log.ResultData) {
	if res.Instant != nil {
		fmt.Fprintf(w, "  Parsed: %s\n", res.Instant.Format(time.RFC3339Nano))
	}
	if res.Leap != nil {
		fmt.Fprintf(w, "  Leap: %v\n", *res.Leap)
	}
	if res.Formatted != "" {
		fmt.Fprintf(w, "  Formatted: %s\n", res.Formatted)
	}
	if res.Radians != nil {
		fmt.Fprintf(w, "  Angle: %.6f rad (%.2f deg)\n", *res.Radians, *res.Radians*180/math.Pi)
	}
}

// formatErrorDetails writes failure details.
func formatErrorDetails(w io.Writer, errData *log.ErrorData) {
	fmt.Fprintf(w, "  Message: %s\n", errData.Message)
	if errData.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", errData.Context)
	}
}

// ParseSourceFlag parses a source string from a command-line flag
// (case-insensitive).
func ParseSourceFlag(s string) (log.Source, error) {
	switch strings.ToLower(s) {
	case "shell":
		return log.SourceShell, nil
	case "web":
		return log.SourceWeb, nil
	case "check":
		return log.SourceCheck, nil
	default:
		return 0, fmt.Errorf("invalid source: %s (must be shell, web, or check)", s)
	}
}

// ParseOperationFlag parses an operation string from a command-line flag
// (case-insensitive).
func ParseOperationFlag(s string) (log.Operation, error) {
	switch strings.ToLower(s) {
	case "parse_rfc2822", "rfc2822":
		return log.OpParseRFC2822, nil
	case "parse_iso8601", "iso8601":
		return log.OpParseISO8601, nil
	case "leap_year":
		return log.OpLeapYear, nil
	case "timespan":
		return log.OpTimeSpan, nil
	case "clock_angle":
		return log.OpClockAngle, nil
	default:
		return 0, fmt.Errorf("invalid operation: %s (must be parse_rfc2822, parse_iso8601, leap_year, timespan, or clock_angle)", s)
	}
}

// ParseOutcomeFlag parses an outcome string from a command-line flag
// (case-insensitive).
func ParseOutcomeFlag(s string) (log.Outcome, error) {
	switch strings.ToLower(s) {
	case "ok":
		return log.OutcomeOK, nil
	case "parse_failure":
		return log.OutcomeParseFailure, nil
	case "invalid_input":
		return log.OutcomeInvalidInput, nil
	default:
		return 0, fmt.Errorf("invalid outcome: %s (must be ok, parse_failure, or invalid_input)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open audit file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
