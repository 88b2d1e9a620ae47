//go:build darwin

package transport

import "errors"

// gattCharacteristic on macOS follows the CoreBluetooth backend, which has
// an acknowledged write but no read.
type gattCharacteristic interface {
	gattNotifier
	Write(p []byte) (int, error)
}

func readValue(gattCharacteristic, []byte) (int, error) {
	return 0, errors.ErrUnsupported
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
