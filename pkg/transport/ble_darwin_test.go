//go:build darwin

package transport

import (
	"errors"
	"testing"

	"github.com/cubekit/cube-go/pkg/wire"
)

func TestBLEPeerReadUnsupported(t *testing.T) {
	peer, _, fakes := newTestPeer()

	_, err := peer.Read(wire.ChannelBattery)
	if !errors.Is(err, errors.ErrUnsupported) {
		t.Fatalf("expected errors.ErrUnsupported, got %v", err)
	}
	if fakes[wire.ChannelBattery].reads != 0 {
		t.Error("characteristic was read")
	}
}

func TestBLEPeerWriteWithResponse(t *testing.T) {
	peer, _, fakes := newTestPeer()

	if err := peer.Write(wire.ChannelMotor, []byte{1}, true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if motor := fakes[wire.ChannelMotor]; len(motor.acked) != 1 || !motor.acked[0] {
		t.Errorf("acked = %v, want [true]", motor.acked)
	}
}
