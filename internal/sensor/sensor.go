// Package sensor acquires temperature, humidity, water level and time of day.
// Drivers sit behind small interfaces; the Acquirer turns their readings into
// logic.Snapshot values for the control loop.
package sensor

import (
	"errors"
	"time"

	"github.com/sweeney/env-controller/internal/logic"
)

// WaterChannel is the ADC channel the water-level probe is wired to.
const WaterChannel = 0

// ErrNoReading is returned by climate drivers that produced no usable value.
var ErrNoReading = errors.New("sensor: no reading")

// Reading is one temperature/humidity sample.
type Reading struct {
	Temperature int
	Humidity    int
}

// Climate reads the temperature/humidity sensor.
type Climate interface {
	Read() (Reading, error)
}

// ADC reads an analog channel and returns a 10-bit value.
type ADC interface {
	Read(channel int) (uint16, error)
}

// Clock reads the current time of day.
type Clock interface {
	Now() logic.TimeOfDay
}

// SystemClock reads local wall time. On Linux the kernel keeps this in step
// with the hardware RTC.
type SystemClock struct {
	// Location defaults to time.Local.
	Location *time.Location
}

// Now returns the current local hour, minute and second.
func (c SystemClock) Now() logic.TimeOfDay {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return TimeOfDayOf(time.Now().In(loc))
}

// TimeOfDayOf converts a time.Time to a clock reading.
func TimeOfDayOf(t time.Time) logic.TimeOfDay {
	return logic.TimeOfDay{
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}
}
