package log

// Logger receives protocol log events. Sessions call Log from their
// notification and dispatch paths, so implementations must be safe for
// concurrent use and should not block.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards all events.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// LoggerFunc adapts an ordinary function to the Logger interface.
type LoggerFunc func(Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// FilteredLogger forwards only the events accepted by its filter.
type FilteredLogger struct {
	next   Logger
	filter Filter
}

// NewFilteredLogger wraps next so that it only sees events matching filter.
func NewFilteredLogger(next Logger, filter Filter) *FilteredLogger {
	return &FilteredLogger{next: next, filter: filter}
}

// Log forwards event when it matches.
func (l *FilteredLogger) Log(event Event) {
	if l.filter.Matches(event) {
		l.next.Log(event)
	}
}

var (
	_ Logger = NoopLogger{}
	_ Logger = LoggerFunc(nil)
	_ Logger = (*FilteredLogger)(nil)
)
