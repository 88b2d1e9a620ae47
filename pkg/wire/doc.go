// Package wire defines the binary wire format of the cube GATT protocol.
//
// Every command written to and every notification read from the cube starts
// with a one-byte tag that selects the concrete layout of the remaining
// bytes. Multi-byte integers are little-endian. The layouts in this package
// are the compatibility surface with the cube firmware and are reproduced
// bit-for-bit.
//
// # Channels
//
// The cube exposes one GATT characteristic per subsystem. Each is modelled
// as a Channel:
//   - Identification: position / standard ID reads and notifications
//   - Motor: motor commands (write) and motor status (notify)
//   - Light, Sound: write only
//   - Motion, Button, Battery: sensor reads and notifications
//   - Config: configuration writes and configuration responses
//
// # Decoding
//
// Decoders return sealed interface values (Identification, MotionState,
// MotorStatus) whose concrete type is selected by the tag byte. Payloads
// that match no known tag/length pattern yield a *MalformedMessageError
// that matches ErrMalformedMessage.
//
// # Encoding
//
// Encoders never reject out-of-range parameters; they clamp them to the
// range accepted by the firmware. The one exception is a payload that
// cannot fit the characteristic at all, which yields a
// *PayloadTooLargeError.
package wire
