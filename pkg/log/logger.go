package log

// Logger is the interface applications implement to receive computation
// audit events. Pass nil or NoopLogger to disable auditing.
type Logger interface {
	// Log records a computation event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking affects
	// frontend latency.
	Log(event Event)
}

// NoopLogger discards all events. Use when auditing is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
