//go:build !linux

package eventlog

import (
	"errors"
	"os"
)

// SupportedBaud reports whether OpenSerial accepts baud.
func SupportedBaud(baud int) bool {
	switch baud {
	case 9600, 19200, 38400, 57600, 115200:
		return true
	}
	return false
}

// OpenSerial is not implemented on non-Linux platforms.
func OpenSerial(path string, baud int) (*os.File, error) {
	return nil, errors.New("eventlog: serial port not supported on this platform (requires Linux)")
}
