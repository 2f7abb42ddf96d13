//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealBoard is not available on non-Linux platforms.
type RealBoard struct{}

// NewRealBoard returns an error on non-Linux platforms.
func NewRealBoard(chipName string, pins Pins, onEdge EdgeHandler) (*RealBoard, error) {
	return nil, errUnsupported
}

// SetFan is not implemented on non-Linux platforms.
func (b *RealBoard) SetFan(on bool) error { return errUnsupported }

// SetIndicator is not implemented on non-Linux platforms.
func (b *RealBoard) SetIndicator(mask uint8) error { return errUnsupported }

// Buttons is not implemented on non-Linux platforms.
func (b *RealBoard) Buttons() (bool, bool, error) { return false, false, errUnsupported }

// VentPressed is not implemented on non-Linux platforms.
func (b *RealBoard) VentPressed() (bool, error) { return false, errUnsupported }

// OutputBus is not implemented on non-Linux platforms.
func (b *RealBoard) OutputBus(name string, offsets []int) (*OutputBus, error) {
	return nil, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (b *RealBoard) Close() error { return nil }

// OutputBus is not available on non-Linux platforms.
type OutputBus struct{}

// SetValues is not implemented on non-Linux platforms.
func (o *OutputBus) SetValues(values []int) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (o *OutputBus) Close() error { return nil }
