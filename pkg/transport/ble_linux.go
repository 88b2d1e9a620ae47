//go:build linux

package transport

// gattCharacteristic on Linux follows the BlueZ backend, which can read but
// has no acknowledged write.
type gattCharacteristic interface {
	gattNotifier
	Read(data []byte) (int, error)
}

func readValue(c gattCharacteristic, buf []byte) (int, error) {
	return c.Read(buf)
}

// writeValue always writes without response. Callers that need the cube to
// have processed a request before reading back rely on a delay instead.
func writeValue(c gattCharacteristic, data []byte, _ bool) error {
	_, err := c.WriteWithoutResponse(data)
	return err
}
