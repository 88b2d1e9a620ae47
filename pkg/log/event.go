package log

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cubekit/cube-go/pkg/wire"
)

// MaxFrameCapture is the number of payload bytes kept per frame.
const MaxFrameCapture = 64

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the device session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// DeviceAddress is the BLE address of the cube.
	DeviceAddress string `cbor:"6,keyasint,omitempty"`

	// DeviceName is the advertised name of the cube.
	DeviceName string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Decoded     *DecodedEvent     `cbor:"11,keyasint,omitempty"` // Wire layer
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Session state
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Channel returns the channel the event refers to, if any.
func (e Event) Channel() (wire.Channel, bool) {
	switch {
	case e.Frame != nil:
		return e.Frame.Channel, true
	case e.Decoded != nil:
		return e.Decoded.Channel, true
	case e.Error != nil && e.Error.Channel != 0:
		return e.Error.Channel, true
	}
	return 0, false
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates data received from the cube.
	DirectionIn Direction = 0
	// DirectionOut indicates data sent to the cube.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the GATT layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the codec layer (decoded events).
	LayerWire Layer = 1
	// LayerService is the session layer.
	LayerService Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCommand indicates a payload written to the cube.
	CategoryCommand Category = 0
	// CategoryNotification indicates a payload pushed by the cube.
	CategoryNotification Category = 1
	// CategoryRead indicates a payload fetched by an explicit read.
	CategoryRead Category = 2
	// CategoryState indicates a state change.
	CategoryState Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCommand:
		return "COMMAND"
	case CategoryNotification:
		return "NOTIFICATION"
	case CategoryRead:
		return "READ"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category with the given case-insensitive name.
func ParseCategory(name string) (Category, bool) {
	for c := CategoryCommand; c <= CategoryError; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, true
		}
	}
	return 0, false
}

// FrameEvent captures a raw channel payload at the transport layer.
type FrameEvent struct {
	// Channel the payload travelled on.
	Channel wire.Channel `cbor:"1,keyasint"`

	// Size is the payload size in bytes.
	Size int `cbor:"2,keyasint"`

	// Data is the payload (may be truncated).
	Data []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`

	// WithResponse is set for writes that waited for an acknowledgement.
	WithResponse bool `cbor:"5,keyasint,omitempty"`
}

// NewFrameEvent captures data, truncating it to MaxFrameCapture bytes.
func NewFrameEvent(ch wire.Channel, data []byte, withResponse bool) *FrameEvent {
	f := &FrameEvent{
		Channel:      ch,
		Size:         len(data),
		WithResponse: withResponse,
	}
	if len(data) > MaxFrameCapture {
		data = data[:MaxFrameCapture]
		f.Truncated = true
	}
	f.Data = append([]byte(nil), data...)
	return f
}

// DecodedEvent captures a decoded payload at the wire layer.
type DecodedEvent struct {
	// Channel the payload came from.
	Channel wire.Channel `cbor:"1,keyasint"`

	// Kind is the decoded type name, e.g. "PositionID".
	Kind string `cbor:"2,keyasint"`

	// Payload is the decoded value.
	Payload any `cbor:"3,keyasint,omitempty"`
}

// NewDecodedEvent captures a decoded wire event.
func NewDecodedEvent(ev wire.Event) *DecodedEvent {
	return &DecodedEvent{
		Channel: ev.Channel(),
		Kind:    EventKind(ev),
		Payload: ev,
	}
}

// EventKind returns the unqualified type name of a wire event.
func EventKind(ev wire.Event) string {
	name := fmt.Sprintf("%T", ev)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// StateChangeEvent captures connection and session lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a BLE link state change.
	StateEntityConnection StateEntity = 0
	// StateEntitySession indicates a session state change.
	StateEntitySession StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntitySession:
		return "SESSION"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Channel involved, 0 if none.
	Channel wire.Channel `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
