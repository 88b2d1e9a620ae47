package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends protocol events to a .clog capture as a stream of CBOR
// items. It is safe for concurrent use.
type FileLogger struct {
	path string

	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool

	failed atomic.Uint64
}

// NewFileLogger opens path for appending. The file and any missing parent
// directories are created.
func NewFileLogger(path string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{
		path:    path,
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Path returns the capture file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Failed returns how many events could not be written. A failed write never
// reaches the session; it is only counted.
func (l *FileLogger) Failed() uint64 {
	return l.failed.Load()
}

// Log appends event to the capture. Events logged after Close are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.failed.Add(1)
	}
}

// Close syncs and closes the capture. Calling Close again is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return errors.Join(l.file.Sync(), l.file.Close())
}

var _ Logger = (*FileLogger)(nil)
