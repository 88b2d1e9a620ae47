// Package transport connects to a cube over Bluetooth Low Energy.
//
// The cube exposes one GATT service whose characteristics map one-to-one
// onto the logical channels of package wire:
//
//	┌────────────────────────────────┐
//	│   Channel payloads (wire)      │
//	├────────────────────────────────┤
//	│   GATT characteristics         │
//	├────────────────────────────────┤
//	│   BLE link                     │
//	└────────────────────────────────┘
//
// Peer is the abstraction the session layer talks to. BLEPeer implements it
// on top of tinygo.org/x/bluetooth; tests use the generated mocks.MockPeer.
//
// # Notifications
//
// Listeners run on the adapter's callback goroutine and receive a private
// copy of each payload. They must hand the payload off without blocking.
//
// # Connecting
//
// Dial scans for a cube by address, advertised name or service UUID and
// retries with exponential backoff using package connection.
//
// # Platform differences
//
// The bluetooth backends do not expose the same characteristic operations:
//
//   - Linux (BlueZ) reads values but has no acknowledged write. Writes that
//     ask for a response are sent without one.
//   - macOS (CoreBluetooth) has acknowledged writes but no read. Read
//     returns an error wrapping errors.ErrUnsupported.
//   - Windows supports both.
//
// The protocol version query waits a fixed delay between request and read,
// so it does not depend on the write acknowledgement.
package transport
