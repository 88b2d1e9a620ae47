package wire

import (
	"encoding/binary"
	"time"
)

// Device time units.
const (
	// centiUnit is the 10 ms unit used by most duration fields.
	centiUnit = 10 * time.Millisecond

	// magneticUnit is the 20 ms unit of the magnetic sensor interval.
	magneticUnit = 20 * time.Millisecond
)

// durationByte converts d to the given device unit, rounding to the nearest
// unit, and clamps the result to a byte. Negative durations become 0.
func durationByte(d time.Duration, unit time.Duration) byte {
	if d <= 0 {
		return 0
	}
	n := (d + unit/2) / unit
	if n > 0xff {
		return 0xff
	}
	return byte(n)
}

// clampByte bounds v to [0, limit].
func clampByte[T ~uint8 | ~int](v T, limit T) byte {
	if v < 0 {
		return 0
	}
	if v > limit {
		return byte(limit)
	}
	return byte(v)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func appendUint16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}

func appendInt16(b []byte, v int16) []byte {
	return binary.LittleEndian.AppendUint16(b, uint16(v))
}

func readUint16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

func readInt16(b []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(b[off:]))
}

func readUint32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}
