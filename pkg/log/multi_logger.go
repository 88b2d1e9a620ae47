package log

import (
	"errors"
	"io"
)

// MultiLogger fans each event out to several loggers in order, typically a
// FileLogger capture plus a SlogAdapter mirror.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Nil entries are skipped and nested
// MultiLoggers are flattened, so callers can pass optional sinks directly.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		switch v := l.(type) {
		case nil:
		case *MultiLogger:
			m.loggers = append(m.loggers, v.loggers...)
		default:
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

// Len returns the number of sinks.
func (m *MultiLogger) Len() int {
	return len(m.loggers)
}

// Log sends the event to every sink.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

// Close closes every sink that implements io.Closer. All sinks are closed
// even when one fails; the errors are joined.
func (m *MultiLogger) Close() error {
	var errs []error
	for _, l := range m.loggers {
		if c, ok := l.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

var _ Logger = (*MultiLogger)(nil)
