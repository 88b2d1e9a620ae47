package wire

import (
	"errors"
	"fmt"
)

// Codec errors.
var (
	// ErrMalformedMessage indicates a payload that matches no known
	// tag/length pattern for its channel.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrPayloadTooLarge indicates a command that does not fit the
	// characteristic payload.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// MalformedMessageError carries the payload that failed to decode.
type MalformedMessageError struct {
	Channel Channel
	Data    []byte
	Reason  string
}

func newMalformed(ch Channel, data []byte, reason string) *MalformedMessageError {
	return &MalformedMessageError{
		Channel: ch,
		Data:    append([]byte(nil), data...),
		Reason:  reason,
	}
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("%s: %s: %s [% x]", ErrMalformedMessage, e.Channel, e.Reason, e.Data)
}

// Is reports whether target is ErrMalformedMessage.
func (e *MalformedMessageError) Is(target error) bool {
	return target == ErrMalformedMessage
}

// PayloadTooLargeError reports the size of an oversized payload section.
type PayloadTooLargeError struct {
	What  string
	Size  int
	Limit int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("%s: %s is %d bytes, limit %d", ErrPayloadTooLarge, e.What, e.Size, e.Limit)
}

// Is reports whether target is ErrPayloadTooLarge.
func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}
