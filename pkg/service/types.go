package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/wire"
)

// Session errors.
var (
	ErrSessionReleased = errors.New("session released")
	ErrNotNotifiable   = errors.New("channel does not notify")
)

// Session defaults.
const (
	DefaultQueueSize   = 64
	DefaultVersionWait = 100 * time.Millisecond
)

// State is the lifecycle state of a DeviceSession.
type State uint8

const (
	// StateConnected is the state of a newly created session.
	StateConnected State = iota

	// StateReleased is entered by Release and never left.
	StateReleased
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateReleased:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// SessionConfig configures a DeviceSession.
type SessionConfig struct {
	// Logger receives operational logs. Defaults to slog.Default().
	Logger *slog.Logger

	// ProtocolLogger receives protocol capture events. Optional.
	ProtocolLogger log.Logger

	// SessionID correlates protocol events. Generated when empty.
	SessionID string

	// DeviceName is recorded with protocol events. Optional.
	DeviceName string

	// QueueSize bounds the notification queue. Defaults to DefaultQueueSize.
	QueueSize int

	// VersionWait is the delay between the protocol version request and
	// the read of its response. Defaults to DefaultVersionWait.
	VersionWait time.Duration

	// OnError is called from the dispatch goroutine for every payload that
	// fails to decode. Optional.
	OnError func(ch wire.Channel, err error)
}

func (c *SessionConfig) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.ProtocolLogger == nil {
		c.ProtocolLogger = log.NoopLogger{}
	}
	if c.SessionID == "" {
		c.SessionID = log.NewSessionID()
	}
	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.VersionWait <= 0 {
		c.VersionWait = DefaultVersionWait
	}
}
