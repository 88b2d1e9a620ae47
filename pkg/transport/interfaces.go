package transport

import (
	"errors"

	"github.com/cubekit/cube-go/pkg/wire"
)

// Transport errors.
var (
	// ErrUnknownChannel is returned for a channel the peer has no
	// characteristic for.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrNotConnected is returned after the peer has been disconnected.
	ErrNotConnected = errors.New("not connected")
)

// Listener receives raw notification bytes from the peer.
// It is called on the transport's own goroutine and must not block.
// The data slice is owned by the listener.
type Listener func(ch wire.Channel, data []byte)

// Peer is a connected cube, addressed by logical channel.
// Implemented by BLEPeer.
type Peer interface {
	// Read reads the current value of a channel. Backends without read
	// support return an error wrapping errors.ErrUnsupported.
	Read(ch wire.Channel) ([]byte, error)

	// Write writes a payload to a channel, waiting for the peer's write
	// acknowledgement when withResponse is set and the backend supports it.
	Write(ch wire.Channel, data []byte, withResponse bool) error

	// EnableNotification turns notifications for a channel on or off.
	EnableNotification(ch wire.Channel, enable bool) error

	// AddListener registers a listener for notifications on any channel.
	AddListener(l Listener)

	// Disconnect closes the link. Further calls return ErrNotConnected.
	Disconnect() error
}

// Compile-time interface satisfaction checks.
var _ Peer = (*BLEPeer)(nil)
