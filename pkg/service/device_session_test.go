package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cubekit/cube-go/pkg/log"
	"github.com/cubekit/cube-go/pkg/transport"
	"github.com/cubekit/cube-go/pkg/transport/mocks"
	"github.com/cubekit/cube-go/pkg/wire"
)

const waitTimeout = time.Second

// newTestSession creates a session on a mock peer and returns the listener
// the session registered, so tests can inject notifications.
func newTestSession(t *testing.T, cfg SessionConfig) (*DeviceSession, *mocks.MockPeer, transport.Listener) {
	t.Helper()

	peer := mocks.NewMockPeer(t)
	var listener transport.Listener
	peer.EXPECT().AddListener(mock.Anything).Run(func(l transport.Listener) {
		listener = l
	}).Return().Once()
	peer.EXPECT().Disconnect().Return(nil).Maybe()

	sess := NewDeviceSession(peer, cfg)
	require.NotNil(t, listener, "session did not register a listener")
	t.Cleanup(func() { _ = sess.Release() })

	return sess, peer, listener
}

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) byCategory(c log.Category) []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []log.Event
	for _, e := range r.events {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

func TestSessionCommands(t *testing.T) {
	tests := []struct {
		name string
		ch   wire.Channel
		want []byte
		call func(s *DeviceSession) error
	}{
		{
			name: "motor",
			ch:   wire.ChannelMotor,
			want: []byte{0x02, 0x01, 0x01, 50, 0x02, 0x02, 30, 100},
			call: func(s *DeviceSession) error { return s.SetMotor(50, -30, time.Second) },
		},
		{
			name: "motor target",
			ch:   wire.ChannelMotor,
			want: []byte{0x03, 0x01, 0x05, 0x00, 0x50, 0x00, 0x00, 0xfa, 0x00, 0xfa, 0x00, 0x00, 0xa0},
			call: func(s *DeviceSession) error {
				return s.SetMotorTarget(wire.MotorTarget{
					ControlID: 1,
					Timeout:   5,
					MaxSpeed:  80,
					Target:    wire.Target{X: 250, Y: 250, Angle: wire.AngleNoRotation},
				})
			},
		},
		{
			name: "light",
			ch:   wire.ChannelLight,
			want: []byte{0x03, 0x00, 0x01, 0x01, 0xff, 0x00, 0x00},
			call: func(s *DeviceSession) error {
				return s.SetLight(wire.Light{R: 255})
			},
		},
		{
			name: "light off",
			ch:   wire.ChannelLight,
			want: []byte{0x01},
			call: func(s *DeviceSession) error { return s.SetLightOff() },
		},
		{
			name: "sound",
			ch:   wire.ChannelSound,
			want: []byte{0x02, 0x03, 0xff},
			call: func(s *DeviceSession) error { return s.PlaySound(3, 255) },
		},
		{
			name: "sound off",
			ch:   wire.ChannelSound,
			want: []byte{0x01},
			call: func(s *DeviceSession) error { return s.StopSound() },
		},
		{
			name: "collision threshold",
			ch:   wire.ChannelConfig,
			want: []byte{0x06, 0x00, 0x05},
			call: func(s *DeviceSession) error { return s.SetCollisionThreshold(5) },
		},
		{
			name: "motor speed notify",
			ch:   wire.ChannelConfig,
			want: []byte{0x1c, 0x00, 0x01},
			call: func(s *DeviceSession) error { return s.SetMotorSpeedNotify(true) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, peer, _ := newTestSession(t, SessionConfig{})
			peer.EXPECT().Write(tt.ch, tt.want, false).Return(nil).Once()

			require.NoError(t, tt.call(sess))
		})
	}
}

func TestSessionCommandEncodeError(t *testing.T) {
	sess, _, _ := newTestSession(t, SessionConfig{})

	goals := make([]wire.Target, 5)
	err := sess.SetMotorMultipleTargets(wire.MultiTarget{Goals: goals})

	assert.ErrorIs(t, err, wire.ErrPayloadTooLarge)
	// No Write expectation: the mock fails the test if one is made.
}

func TestSessionWriteError(t *testing.T) {
	sess, peer, _ := newTestSession(t, SessionConfig{})
	cause := errors.New("link lost")
	peer.EXPECT().Write(wire.ChannelLight, mock.Anything, false).Return(cause).Once()

	assert.ErrorIs(t, sess.SetLightOff(), cause)
}

func TestSessionNotificationOrder(t *testing.T) {
	sess, _, notify := newTestSession(t, SessionConfig{})

	got := make(chan wire.Event, 8)
	sess.Subscribe(wire.ChannelButton, func(ev wire.Event) { got <- ev })

	notify(wire.ChannelButton, []byte{0x01, 0x80})
	notify(wire.ChannelButton, []byte{0x01, 0x00})
	notify(wire.ChannelButton, []byte{0x01, 0x80})

	want := []bool{true, false, true}
	for i, pressed := range want {
		select {
		case ev := <-got:
			assert.Equal(t, wire.ButtonState{Pressed: pressed}, ev, "event %d", i)
		case <-time.After(waitTimeout):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestSessionHandlersInSubscriptionOrder(t *testing.T) {
	sess, _, notify := newTestSession(t, SessionConfig{})

	order := make(chan string, 4)
	sess.Subscribe(wire.ChannelBattery, func(wire.Event) { order <- "a" })
	sess.Subscribe(wire.ChannelBattery, func(wire.Event) { order <- "b" })

	notify(wire.ChannelBattery, []byte{50})

	for _, want := range []string{"a", "b"} {
		select {
		case got := <-order:
			assert.Equal(t, want, got)
		case <-time.After(waitTimeout):
			t.Fatal("timed out waiting for handler")
		}
	}
}

func TestSessionMalformedContinues(t *testing.T) {
	errs := make(chan error, 1)
	sess, _, notify := newTestSession(t, SessionConfig{
		OnError: func(ch wire.Channel, err error) {
			assert.Equal(t, wire.ChannelMotion, ch)
			errs <- err
		},
	})

	got := make(chan wire.Event, 2)
	sess.Subscribe(wire.ChannelMotion, func(ev wire.Event) { got <- ev })

	notify(wire.ChannelMotion, []byte{0x09})
	notify(wire.ChannelMotion, []byte{0x01, 0x01, 0x00})

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, wire.ErrMalformedMessage)
	case <-time.After(waitTimeout):
		t.Fatal("OnError not called")
	}

	select {
	case ev := <-got:
		assert.Equal(t, wire.Motion{Level: true}, ev)
	case <-time.After(waitTimeout):
		t.Fatal("valid notification after malformed one was not delivered")
	}
	assert.Empty(t, got, "malformed payload reached a handler")
}

func TestSessionConfigPassthrough(t *testing.T) {
	sess, _, notify := newTestSession(t, SessionConfig{})

	got := make(chan wire.Event, 1)
	sess.Subscribe(wire.ChannelConfig, func(ev wire.Event) { got <- ev })

	notify(wire.ChannelConfig, []byte{0x98, 0x00})

	select {
	case ev := <-got:
		assert.Equal(t, wire.RawEvent{Source: wire.ChannelConfig, Data: []byte{0x98, 0x00}}, ev)
	case <-time.After(waitTimeout):
		t.Fatal("timed out")
	}
}

func TestSessionQueueOverflow(t *testing.T) {
	sess, _, notify := newTestSession(t, SessionConfig{QueueSize: 1})

	entered := make(chan struct{}, 4)
	unblock := make(chan struct{})
	delivered := make(chan struct{}, 4)
	sess.Subscribe(wire.ChannelBattery, func(wire.Event) {
		entered <- struct{}{}
		<-unblock
		delivered <- struct{}{}
	})

	notify(wire.ChannelBattery, []byte{1})
	select {
	case <-entered:
	case <-time.After(waitTimeout):
		t.Fatal("first notification not dispatched")
	}

	// The dispatch goroutine is busy: one payload fits, the next is dropped.
	notify(wire.ChannelBattery, []byte{2})
	notify(wire.ChannelBattery, []byte{3})
	assert.Equal(t, uint64(1), sess.Dropped())

	close(unblock)
	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(waitTimeout):
			t.Fatalf("delivery %d missing", i)
		}
	}
}

func TestSessionReads(t *testing.T) {
	sess, peer, _ := newTestSession(t, SessionConfig{})

	peer.EXPECT().Read(wire.ChannelBattery).Return([]byte{80}, nil).Once()
	battery, err := sess.Battery()
	require.NoError(t, err)
	assert.Equal(t, uint8(80), battery.Percent)

	peer.EXPECT().Read(wire.ChannelIdentification).Return([]byte{0x03}, nil).Once()
	id, err := sess.Identification()
	require.NoError(t, err)
	assert.Equal(t, wire.MissedID{From: wire.IDKindPosition}, id)

	peer.EXPECT().Read(wire.ChannelMotor).Return([]byte{0xe0, 10, 20}, nil).Once()
	motor, err := sess.Motor()
	require.NoError(t, err)
	assert.Equal(t, wire.SpeedReport{Left: 10, Right: 20}, motor)

	peer.EXPECT().Read(wire.ChannelButton).Return([]byte{0x02, 0x00}, nil).Once()
	_, err = sess.Button()
	assert.ErrorIs(t, err, wire.ErrMalformedMessage)

	cause := errors.New("att timeout")
	peer.EXPECT().Read(wire.ChannelMotion).Return(nil, cause).Once()
	_, err = sess.Motion()
	assert.ErrorIs(t, err, cause)
}

func TestSessionProtocolVersion(t *testing.T) {
	sess, peer, _ := newTestSession(t, SessionConfig{VersionWait: time.Millisecond})

	peer.EXPECT().Write(wire.ChannelConfig, []byte{0x01, 0x00}, true).Return(nil).Once()
	peer.EXPECT().Read(wire.ChannelConfig).Return([]byte{0x81, 0x00, '2', '.', '4', '.', '0'}, nil).Once()

	version, err := sess.ProtocolVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.4.0", version)
}

func TestSessionProtocolVersionCancelled(t *testing.T) {
	sess, peer, _ := newTestSession(t, SessionConfig{VersionWait: time.Hour})
	peer.EXPECT().Write(wire.ChannelConfig, []byte{0x01, 0x00}, true).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sess.ProtocolVersion(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionEnableNotification(t *testing.T) {
	sess, peer, _ := newTestSession(t, SessionConfig{})

	peer.EXPECT().EnableNotification(wire.ChannelButton, true).Return(nil).Once()
	require.NoError(t, sess.EnableNotification(wire.ChannelButton, true))

	assert.ErrorIs(t, sess.EnableNotification(wire.ChannelLight, true), ErrNotNotifiable)
	assert.ErrorIs(t, sess.EnableNotification(wire.ChannelSound, false), ErrNotNotifiable)
}

func TestSessionRelease(t *testing.T) {
	peer := mocks.NewMockPeer(t)
	var notify transport.Listener
	peer.EXPECT().AddListener(mock.Anything).Run(func(l transport.Listener) { notify = l }).Return().Once()
	peer.EXPECT().Disconnect().Return(nil).Once()

	sess := NewDeviceSession(peer, SessionConfig{})
	assert.Equal(t, StateConnected, sess.State())

	called := false
	sess.Subscribe(wire.ChannelButton, func(wire.Event) { called = true })

	require.NoError(t, sess.Release())
	assert.Equal(t, StateReleased, sess.State())

	// Second release is a no-op; Disconnect is expected exactly once.
	require.NoError(t, sess.Release())

	assert.ErrorIs(t, sess.SetMotor(10, 10, 0), ErrSessionReleased)
	assert.ErrorIs(t, sess.SetLightOff(), ErrSessionReleased)
	assert.ErrorIs(t, sess.EnableNotification(wire.ChannelButton, true), ErrSessionReleased)
	_, err := sess.Battery()
	assert.ErrorIs(t, err, ErrSessionReleased)
	_, err = sess.ProtocolVersion(context.Background())
	assert.ErrorIs(t, err, ErrSessionReleased)

	notify(wire.ChannelButton, []byte{0x01, 0x80})
	time.Sleep(10 * time.Millisecond)
	assert.False(t, called, "event delivered after release")
}

func TestSessionReleaseDisconnectError(t *testing.T) {
	peer := mocks.NewMockPeer(t)
	peer.EXPECT().AddListener(mock.Anything).Return().Once()
	cause := errors.New("already gone")
	peer.EXPECT().Disconnect().Return(cause).Once()

	sess := NewDeviceSession(peer, SessionConfig{})
	assert.ErrorIs(t, sess.Release(), cause)
	assert.Equal(t, StateReleased, sess.State())
}

func TestSessionProtocolLogging(t *testing.T) {
	rec := &recordingLogger{}
	sess, peer, notify := newTestSession(t, SessionConfig{
		ProtocolLogger: rec,
		SessionID:      "session-1",
		DeviceName:     "cube-a",
	})
	assert.Equal(t, "session-1", sess.SessionID())

	peer.EXPECT().Write(wire.ChannelLight, []byte{0x01}, false).Return(nil).Once()
	require.NoError(t, sess.SetLightOff())

	got := make(chan struct{}, 1)
	sess.Subscribe(wire.ChannelBattery, func(wire.Event) { got <- struct{}{} })
	notify(wire.ChannelBattery, []byte{42})
	select {
	case <-got:
	case <-time.After(waitTimeout):
		t.Fatal("timed out")
	}

	commands := rec.byCategory(log.CategoryCommand)
	require.Len(t, commands, 1)
	assert.Equal(t, log.DirectionOut, commands[0].Direction)
	assert.Equal(t, wire.ChannelLight, commands[0].Frame.Channel)
	assert.Equal(t, "cube-a", commands[0].DeviceName)

	notifications := rec.byCategory(log.CategoryNotification)
	require.Len(t, notifications, 2, "expected raw frame and decoded event")
	assert.NotNil(t, notifications[0].Frame)
	require.NotNil(t, notifications[1].Decoded)
	assert.Equal(t, "BatteryLevel", notifications[1].Decoded.Kind)

	states := rec.byCategory(log.CategoryState)
	require.NotEmpty(t, states)
	assert.Equal(t, "CONNECTED", states[0].StateChange.NewState)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, e := range rec.events {
		assert.Equal(t, "session-1", e.SessionID)
	}
}

func TestObserve(t *testing.T) {
	sess, _, notify := newTestSession(t, SessionConfig{})

	motions := make(chan wire.Motion, 2)
	tilts := make(chan wire.TiltEuler, 2)
	Observe(sess, wire.ChannelMotion, func(m wire.Motion) { motions <- m })
	Observe(sess, wire.ChannelMotion, func(e wire.TiltEuler) { tilts <- e })

	notify(wire.ChannelMotion, []byte{0x03, 0x01, 0x0a, 0x00, 0x00, 0x00, 0x00, 0x00})
	notify(wire.ChannelMotion, []byte{0x01, 0x00, 0x01})

	select {
	case e := <-tilts:
		assert.Equal(t, int16(10), e.Roll)
	case <-time.After(waitTimeout):
		t.Fatal("tilt not observed")
	}
	select {
	case m := <-motions:
		assert.True(t, m.Collision)
	case <-time.After(waitTimeout):
		t.Fatal("motion not observed")
	}
	assert.Empty(t, motions)
	assert.Empty(t, tilts)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "CONNECTED", StateConnected.String())
	assert.Equal(t, "RELEASED", StateReleased.String())
	assert.Equal(t, "UNKNOWN", State(7).String())
}
