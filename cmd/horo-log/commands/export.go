package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/horo-tools/horo-go/pkg/log"
)

// RunExport exports the audit file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open audit file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{"timestamp", "request_id", "source", "operation", "outcome", "input", "result", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.RequestID,
			event.Source.String(),
			event.Operation.String(),
			event.Outcome.String(),
			summarizeInput(event.Input),
			summarizeResult(event.Result),
			summarizeError(event.Error),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// summarizeInput renders the input as a single CSV cell.
func summarizeInput(in *log.InputData) string {
	switch {
	case in == nil:
		return ""
	case in.Text != "":
		return in.Text
	case in.Start != nil && in.End != nil:
		return in.Start.Format(time.RFC3339Nano) + " -> " + in.End.Format(time.RFC3339Nano)
	case in.Instant != nil:
		return in.Instant.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// summarizeResult renders the result as a single CSV cell.
func summarizeResult(res *log.ResultData) string {
	switch {
	case res == nil:
		return ""
	case res.Instant != nil:
		return res.Instant.Format(time.RFC3339Nano)
	case res.Leap != nil:
		return fmt.Sprintf("%v", *res.Leap)
	case res.Formatted != "":
		return res.Formatted
	case res.Radians != nil:
		return fmt.Sprintf("%.9f", *res.Radians)
	default:
		return ""
	}
}

// summarizeError renders the error as a single CSV cell.
func summarizeError(errData *log.ErrorData) string {
	if errData == nil {
		return ""
	}
	return errData.Message
}
