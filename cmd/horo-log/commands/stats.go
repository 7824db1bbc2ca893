package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/horo-tools/horo-go/pkg/log"
)

// Stats holds aggregate statistics about an audit file.
type Stats struct {
	TotalEvents       int
	EventsBySource    map[log.Source]int
	EventsByOperation map[log.Operation]int
	EventsByOutcome   map[log.Outcome]int
	Requests          map[string]*RequestStats
	Failures          int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// RequestStats holds statistics for a single request ID.
type RequestStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Source    log.Source
}

// RunStats analyzes the audit file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open audit file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsBySource:    make(map[log.Source]int),
		EventsByOperation: make(map[log.Operation]int),
		EventsByOutcome:   make(map[log.Outcome]int),
		Requests:          make(map[string]*RequestStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsBySource[event.Source]++
		stats.EventsByOperation[event.Operation]++
		stats.EventsByOutcome[event.Outcome]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track per-request stats
		req, ok := stats.Requests[event.RequestID]
		if !ok {
			req = &RequestStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
				Source:    event.Source,
			}
			stats.Requests[event.RequestID] = req
		}
		req.Events++
		if event.Timestamp.After(req.LastSeen) {
			req.LastSeen = event.Timestamp
		}

		if event.Outcome != log.OutcomeOK {
			stats.Failures++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Horo Audit Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by source
	fmt.Fprintln(w, "Events by Source:")
	for _, source := range []log.Source{log.SourceShell, log.SourceWeb, log.SourceCheck} {
		if count := stats.EventsBySource[source]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", source.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events by operation
	fmt.Fprintln(w, "Events by Operation:")
	for _, op := range []log.Operation{log.OpParseRFC2822, log.OpParseISO8601, log.OpLeapYear, log.OpTimeSpan, log.OpClockAngle} {
		if count := stats.EventsByOperation[op]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Events by outcome
	fmt.Fprintln(w, "Events by Outcome:")
	for _, outcome := range []log.Outcome{log.OutcomeOK, log.OutcomeParseFailure, log.OutcomeInvalidInput} {
		if count := stats.EventsByOutcome[outcome]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", outcome.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Requests
	fmt.Fprintf(w, "Requests: %d\n", len(stats.Requests))
	if len(stats.Requests) > 0 {
		type reqInfo struct {
			id    string
			stats *RequestStats
		}
		reqs := make([]reqInfo, 0, len(stats.Requests))
		for id, rs := range stats.Requests {
			reqs = append(reqs, reqInfo{id, rs})
		}
		sort.Slice(reqs, func(i, j int) bool {
			return reqs[i].stats.FirstSeen.Before(reqs[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, r := range reqs {
			duration := r.stats.LastSeen.Sub(r.stats.FirstSeen).Round(time.Millisecond)
			shortID := r.id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			fmt.Fprintf(w, "  [%s] %s, %d events, duration %s\n",
				shortID, r.stats.Source.String(), r.stats.Events, duration)
		}
	}

	// Failures
	if stats.Failures > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Failures: %d\n", stats.Failures)
	}
}
