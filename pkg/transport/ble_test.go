package transport

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/cubekit/cube-go/pkg/wire"
)

type fakeChar struct {
	mu       sync.Mutex
	value    []byte
	writes   [][]byte
	acked    []bool
	reads    int
	callback func([]byte)
	err      error
}

func (c *fakeChar) Read(data []byte) (int, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return copy(data, c.value), nil
}

func (c *fakeChar) Write(p []byte) (int, error) {
	return c.record(p, true)
}

func (c *fakeChar) WriteWithoutResponse(p []byte) (int, error) {
	return c.record(p, false)
}

func (c *fakeChar) record(p []byte, acked bool) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, append([]byte(nil), p...))
	c.acked = append(c.acked, acked)
	return len(p), nil
}

func (c *fakeChar) EnableNotifications(callback func([]byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = callback
	return c.err
}

func (c *fakeChar) notify(buf []byte) {
	c.mu.Lock()
	cb := c.callback
	c.mu.Unlock()
	if cb != nil {
		cb(buf)
	}
}

type fakeLink struct {
	disconnects int
}

func (l *fakeLink) Disconnect() error {
	l.disconnects++
	return nil
}

func newTestPeer() (*BLEPeer, *fakeLink, map[wire.Channel]*fakeChar) {
	fakes := map[wire.Channel]*fakeChar{
		wire.ChannelMotor:   {},
		wire.ChannelBattery: {value: []byte{77}},
		wire.ChannelButton:  {},
	}
	chars := make(map[wire.Channel]gattCharacteristic, len(fakes))
	for ch, c := range fakes {
		chars[ch] = c
	}
	link := &fakeLink{}
	return newBLEPeer(link, chars, nil), link, fakes
}

func TestBLEPeerWrite(t *testing.T) {
	peer, _, fakes := newTestPeer()

	if err := peer.Write(wire.ChannelMotor, []byte{1, 2, 3}, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	motor := fakes[wire.ChannelMotor]
	if len(motor.writes) != 1 || !bytes.Equal(motor.writes[0], []byte{1, 2, 3}) {
		t.Fatalf("writes = %x, want [010203]", motor.writes)
	}
	if motor.acked[0] {
		t.Error("write without response was acknowledged")
	}
}

func TestBLEPeerWriteError(t *testing.T) {
	peer, _, fakes := newTestPeer()
	cause := errors.New("att error")
	fakes[wire.ChannelMotor].err = cause

	if err := peer.Write(wire.ChannelMotor, []byte{1}, false); !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestBLEPeerUnknownChannel(t *testing.T) {
	peer, _, _ := newTestPeer()

	if _, err := peer.Read(wire.ChannelLight); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Read: expected ErrUnknownChannel, got %v", err)
	}
	if err := peer.Write(wire.ChannelSound, []byte{1}, false); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("Write: expected ErrUnknownChannel, got %v", err)
	}
}

func TestBLEPeerNotifications(t *testing.T) {
	peer, _, fakes := newTestPeer()

	type note struct {
		ch   wire.Channel
		data []byte
	}
	var got []note
	peer.AddListener(func(ch wire.Channel, data []byte) {
		got = append(got, note{ch, data})
	})

	if err := peer.EnableNotification(wire.ChannelButton, true); err != nil {
		t.Fatalf("EnableNotification failed: %v", err)
	}

	buf := []byte{0x01, 0x80}
	fakes[wire.ChannelButton].notify(buf)
	buf[1] = 0x00 // adapter reuses its buffer

	if len(got) != 1 {
		t.Fatalf("got %d notifications, want 1", len(got))
	}
	if got[0].ch != wire.ChannelButton {
		t.Errorf("channel = %s, want BUTTON", got[0].ch)
	}
	if !bytes.Equal(got[0].data, []byte{0x01, 0x80}) {
		t.Errorf("data = % x, want 01 80", got[0].data)
	}

	if err := peer.EnableNotification(wire.ChannelButton, false); err != nil {
		t.Fatalf("EnableNotification(false) failed: %v", err)
	}
	fakes[wire.ChannelButton].notify([]byte{0x01, 0x80})
	if len(got) != 1 {
		t.Errorf("notification delivered after disable")
	}
}

func TestBLEPeerDisconnect(t *testing.T) {
	peer, link, fakes := newTestPeer()

	called := false
	peer.AddListener(func(wire.Channel, []byte) { called = true })
	if err := peer.EnableNotification(wire.ChannelButton, true); err != nil {
		t.Fatalf("EnableNotification failed: %v", err)
	}

	if err := peer.Disconnect(); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if link.disconnects != 1 {
		t.Errorf("link disconnects = %d, want 1", link.disconnects)
	}

	if err := peer.Disconnect(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("second Disconnect: expected ErrNotConnected, got %v", err)
	}
	if link.disconnects != 1 {
		t.Errorf("link disconnected twice")
	}

	if _, err := peer.Read(wire.ChannelBattery); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Read after disconnect: expected ErrNotConnected, got %v", err)
	}

	fakes[wire.ChannelButton].notify([]byte{0x01, 0x80})
	if called {
		t.Error("listener called after disconnect")
	}
}
