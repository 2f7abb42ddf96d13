// Package gpio provides the controller's digital I/O with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Board drives the fan relay and indicator bank and reads the buttons.
type Board interface {
	// SetFan switches the fan relay.
	SetFan(on bool) error

	// SetIndicator lights the LEDs whose bits are set in mask
	// (bit 0 green, bit 1 yellow, bit 2 red, bit 3 blue) and darkens the rest.
	SetIndicator(mask uint8) error

	// Buttons returns the current START and RESET line levels.
	// true = pressed.
	Buttons() (start, reset bool, err error)

	// VentPressed returns the current level of the polled vent button.
	VentPressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// EdgeHandler is called from the edge-event context whenever START or RESET
// changes level. It receives both line levels read at that moment and must
// not block.
type EdgeHandler func(start, reset bool)

// Bus is a group of output lines written together.
type Bus interface {
	SetValues(values []int) error
}

// LED count and bit order of the indicator bank.
const (
	LEDGreen = iota
	LEDYellow
	LEDRed
	LEDBlue
	NumLEDs
)

// Pins holds line offsets on the GPIO chip.
type Pins struct {
	Fan   int
	LEDs  [NumLEDs]int
	Start int
	Reset int
	Vent  int
	// ButtonsActiveLow inverts the three button lines.
	ButtonsActiveLow bool
}

// maskValues expands an indicator mask into one value per LED line.
func maskValues(mask uint8) []int {
	values := make([]int, NumLEDs)
	for i := range values {
		if mask&(1<<uint(i)) != 0 {
			values[i] = 1
		}
	}
	return values
}

func boolToValue(b bool) int {
	if b {
		return 1
	}
	return 0
}
