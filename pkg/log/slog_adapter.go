package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes audit events to an slog.Logger.
// Useful for development when you want to see computations in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("request_id", event.RequestID),
		slog.String("source", event.Source.String()),
		slog.String("operation", event.Operation.String()),
		slog.String("outcome", event.Outcome.String()),
	}

	if event.Input != nil {
		if event.Input.Text != "" {
			attrs = append(attrs, slog.String("text", event.Input.Text))
		}
		if event.Input.Instant != nil {
			attrs = append(attrs, slog.Time("instant", *event.Input.Instant))
		}
		if event.Input.Start != nil {
			attrs = append(attrs, slog.Time("start", *event.Input.Start))
		}
		if event.Input.End != nil {
			attrs = append(attrs, slog.Time("end", *event.Input.End))
		}
	}

	if event.Result != nil {
		if event.Result.Instant != nil {
			attrs = append(attrs, slog.Time("parsed", *event.Result.Instant))
		}
		if event.Result.Leap != nil {
			attrs = append(attrs, slog.Bool("leap", *event.Result.Leap))
		}
		if event.Result.Formatted != "" {
			attrs = append(attrs, slog.String("formatted", event.Result.Formatted))
		}
		if event.Result.Radians != nil {
			attrs = append(attrs, slog.Float64("radians", *event.Result.Radians))
		}
	}

	if event.Error != nil {
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "computation", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
