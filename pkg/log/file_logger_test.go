package log

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cubekit/cube-go/pkg/wire"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		SessionID: "session-123",
		Direction: DirectionIn,
		Layer:     LayerTransport,
		Category:  CategoryNotification,
		Frame:     NewFrameEvent(wire.ChannelButton, []byte{0x01, 0x80}, false),
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if decoded.SessionID != event.SessionID {
		t.Errorf("SessionID: got %q, want %q", decoded.SessionID, event.SessionID)
	}
	if decoded.Frame == nil || decoded.Frame.Size != 2 {
		t.Errorf("Frame: got %+v", decoded.Frame)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	for _, id := range []string{"first", "second"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), SessionID: id})
		logger.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events := readAll(t, reader)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].SessionID != "first" || events[1].SessionID != "second" {
		t.Errorf("order: %q, %q", events[0].SessionID, events[1].SessionID)
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.clog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// Logging after close is ignored.
	logger.Log(Event{SessionID: "late"})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{Timestamp: time.Now(), SessionID: "concurrent"})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if n := len(readAll(t, reader)); n != 100 {
		t.Errorf("got %d events, want 100", n)
	}
}

func TestFileLoggerCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captures", "today", "cube.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if logger.Path() != path {
		t.Errorf("Path: got %q, want %q", logger.Path(), path)
	}
	logger.Log(Event{Timestamp: time.Now(), SessionID: "nested"})
	if logger.Failed() != 0 {
		t.Errorf("Failed: got %d, want 0", logger.Failed())
	}
}

func TestFileLoggerCountsFailures(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "test.clog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	// Writes to a closed descriptor fail without surfacing to the caller.
	logger.file.Close()
	logger.Log(Event{Timestamp: time.Now(), SessionID: "lost"})
	logger.Log(Event{Timestamp: time.Now(), SessionID: "lost"})

	if got := logger.Failed(); got != 2 {
		t.Errorf("Failed: got %d, want 2", got)
	}
}
