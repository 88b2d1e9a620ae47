//go:build windows

package transport

// gattCharacteristic on Windows follows the WinRT backend, which supports
// both reads and acknowledged writes.
type gattCharacteristic interface {
	gattNotifier
	Read(data []byte) (int, error)
	Write(p []byte) (int, error)
}

func readValue(c gattCharacteristic, buf []byte) (int, error) {
	return c.Read(buf)
}

func writeValue(c gattCharacteristic, data []byte, withResponse bool) error {
	var err error
	if withResponse {
		_, err = c.Write(data)
	} else {
		_, err = c.WriteWithoutResponse(data)
	}
	return err
}
