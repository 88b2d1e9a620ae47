package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/subscription"
	"github.com/cubekit/cube-go/pkg/transport"
	"github.com/cubekit/cube-go/pkg/wire"
)

// notification is a raw payload waiting for dispatch.
type notification struct {
	ch   wire.Channel
	data []byte
}

// DeviceSession manages a session with one connected cube.
type DeviceSession struct {
	mu    sync.RWMutex
	state State

	peer     transport.Peer
	registry *subscription.Registry

	queue   chan notification
	done    chan struct{}
	dropped atomic.Uint64

	logger         *slog.Logger
	protocolLogger log.Logger
	sessionID      string
	deviceName     string
	versionWait    time.Duration
	onError        func(wire.Channel, error)
}

// NewDeviceSession creates a session on a connected peer and starts
// delivering its notifications.
func NewDeviceSession(peer transport.Peer, cfg SessionConfig) *DeviceSession {
	cfg.applyDefaults()

	s := &DeviceSession{
		state:          StateConnected,
		peer:           peer,
		registry:       subscription.NewRegistry(),
		queue:          make(chan notification, cfg.QueueSize),
		done:           make(chan struct{}),
		logger:         cfg.Logger.With("session", cfg.SessionID),
		protocolLogger: cfg.ProtocolLogger,
		sessionID:      cfg.SessionID,
		deviceName:     cfg.DeviceName,
		versionWait:    cfg.VersionWait,
		onError:        cfg.OnError,
	}

	peer.AddListener(s.onNotification)
	go s.dispatchLoop()

	s.logStateChange("", StateConnected, "session created")
	return s
}

// SessionID returns the identifier used in protocol events.
func (s *DeviceSession) SessionID() string {
	return s.sessionID
}

// State returns the current lifecycle state.
func (s *DeviceSession) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dropped returns the number of notifications discarded because the
// queue was full.
func (s *DeviceSession) Dropped() uint64 {
	return s.dropped.Load()
}

// Release disconnects the peer and ends the session. It is safe to call
// more than once; only the first call has an effect.
func (s *DeviceSession) Release() error {
	s.mu.Lock()
	if s.state == StateReleased {
		s.mu.Unlock()
		return nil
	}
	s.state = StateReleased
	close(s.done)
	s.mu.Unlock()

	s.logStateChange(StateConnected.String(), StateReleased, "released")

	if err := s.peer.Disconnect(); err != nil {
		s.logger.Warn("disconnect failed", "error", err)
		return fmt.Errorf("release: %w", err)
	}
	return nil
}

// Subscribe registers a handler for decoded events on a channel.
// Handlers run on the session's dispatch goroutine in subscription order.
func (s *DeviceSession) Subscribe(ch wire.Channel, h subscription.Handler) subscription.ID {
	return s.registry.Subscribe(ch, h)
}

// EnableNotification turns cube notifications for a channel on or off.
func (s *DeviceSession) EnableNotification(ch wire.Channel, enable bool) error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if !ch.IsNotifiable() {
		return fmt.Errorf("%w: %s", ErrNotNotifiable, ch)
	}
	if err := s.peer.EnableNotification(ch, enable); err != nil {
		s.logError(log.LayerTransport, ch, err, "enable notification")
		return err
	}
	return nil
}

// Identification reads the current identification report.
func (s *DeviceSession) Identification() (wire.Identification, error) {
	return readAs(s, wire.ChannelIdentification, wire.DecodeIdentification)
}

// Motion reads the current motion report.
func (s *DeviceSession) Motion() (wire.MotionState, error) {
	return readAs(s, wire.ChannelMotion, wire.DecodeMotion)
}

// Button reads the button state.
func (s *DeviceSession) Button() (wire.ButtonState, error) {
	return readAs(s, wire.ChannelButton, wire.DecodeButton)
}

// Battery reads the battery level.
func (s *DeviceSession) Battery() (wire.BatteryLevel, error) {
	return readAs(s, wire.ChannelBattery, wire.DecodeBattery)
}

// Motor reads the latest motor status.
func (s *DeviceSession) Motor() (wire.MotorStatus, error) {
	return readAs(s, wire.ChannelMotor, wire.DecodeMotor)
}

// ProtocolVersion asks the cube for its BLE protocol version. The response
// is read after the configured wait, which ctx may cut short.
func (s *DeviceSession) ProtocolVersion(ctx context.Context) (string, error) {
	if err := s.write(wire.ChannelConfig, wire.EncodeConfigProtocolVersionRequest(), true); err != nil {
		return "", err
	}

	timer := time.NewTimer(s.versionWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	return readAs(s, wire.ChannelConfig, wire.DecodeProtocolVersionResponse)
}

// readAs reads a channel and decodes the payload with dec.
func readAs[T any](s *DeviceSession, ch wire.Channel, dec func([]byte) (T, error)) (T, error) {
	var zero T
	if err := s.checkActive(); err != nil {
		return zero, err
	}

	data, err := s.peer.Read(ch)
	if err != nil {
		s.logError(log.LayerTransport, ch, err, "read")
		return zero, err
	}
	s.logFrame(log.DirectionIn, log.CategoryRead, ch, data, false)

	v, err := dec(data)
	if err != nil {
		s.logError(log.LayerWire, ch, err, "read")
		return zero, err
	}
	if ev, ok := any(v).(wire.Event); ok {
		s.logDecoded(log.CategoryRead, ev)
	}
	return v, nil
}

// write sends one encoded command.
func (s *DeviceSession) write(ch wire.Channel, data []byte, withResponse bool) error {
	if err := s.checkActive(); err != nil {
		return err
	}

	s.logFrame(log.DirectionOut, log.CategoryCommand, ch, data, withResponse)
	if err := s.peer.Write(ch, data, withResponse); err != nil {
		s.logError(log.LayerTransport, ch, err, "write")
		return err
	}
	return nil
}

func (s *DeviceSession) checkActive() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == StateReleased {
		return ErrSessionReleased
	}
	return nil
}

// onNotification is the peer listener. It never blocks.
func (s *DeviceSession) onNotification(ch wire.Channel, data []byte) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.queue <- notification{ch: ch, data: data}:
	default:
		n := s.dropped.Add(1)
		s.logger.Warn("notification queue full, dropping", "channel", ch, "dropped", n)
	}
}

func (s *DeviceSession) dispatchLoop() {
	for {
		select {
		case <-s.done:
			return
		case n := <-s.queue:
			s.dispatch(n)
		}
	}
}

func (s *DeviceSession) dispatch(n notification) {
	if s.checkActive() != nil {
		return
	}

	s.logFrame(log.DirectionIn, log.CategoryNotification, n.ch, n.data, false)

	ev, err := s.registry.Decode(n.ch, n.data)
	if err != nil {
		s.logger.Warn("dropping undecodable notification", "channel", n.ch, "error", err)
		s.logError(log.LayerWire, n.ch, err, "dispatch")
		if s.onError != nil {
			s.onError(n.ch, err)
		}
		return
	}

	s.logDecoded(log.CategoryNotification, ev)
	s.registry.Deliver(n.ch, ev)
}

func (s *DeviceSession) event(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp:  time.Now(),
		SessionID:  s.sessionID,
		Direction:  dir,
		Layer:      layer,
		Category:   cat,
		DeviceName: s.deviceName,
	}
}

func (s *DeviceSession) logFrame(dir log.Direction, cat log.Category, ch wire.Channel, data []byte, withResponse bool) {
	ev := s.event(dir, log.LayerTransport, cat)
	ev.Frame = log.NewFrameEvent(ch, data, withResponse)
	s.protocolLogger.Log(ev)
}

func (s *DeviceSession) logDecoded(cat log.Category, decoded wire.Event) {
	ev := s.event(log.DirectionIn, log.LayerWire, cat)
	ev.Decoded = log.NewDecodedEvent(decoded)
	s.protocolLogger.Log(ev)
}

func (s *DeviceSession) logError(layer log.Layer, ch wire.Channel, err error, op string) {
	ev := s.event(log.DirectionIn, layer, log.CategoryError)
	ev.Error = &log.ErrorEventData{
		Layer:   layer,
		Message: err.Error(),
		Channel: ch,
		Context: op,
	}
	s.protocolLogger.Log(ev)
}

func (s *DeviceSession) logStateChange(old string, state State, reason string) {
	s.logger.Info("session state changed", "state", state, "reason", reason)

	ev := s.event(log.DirectionIn, log.LayerService, log.CategoryState)
	ev.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntitySession,
		OldState: old,
		NewState: state.String(),
		Reason:   reason,
	}
	s.protocolLogger.Log(ev)
}
