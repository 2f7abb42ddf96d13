package sensor

import (
	"log"

	"github.com/sweeney/env-controller/internal/logic"
)

// Acquirer refreshes the sensor snapshot once per control loop iteration.
// Not safe for concurrent use; it belongs to the main loop.
type Acquirer struct {
	climate Climate
	adc     ADC

	snap     logic.Snapshot
	last     logic.TimeOfDay
	haveLast bool
	adcFault bool
}

// NewAcquirer creates an Acquirer over the given drivers.
func NewAcquirer(climate Climate, adc ADC) *Acquirer {
	return &Acquirer{climate: climate, adc: adc}
}

// Acquire returns the snapshot for the iteration running at now.
// The water level is read on every call. Temperature and humidity are read
// once per minute, on the first call at or after second 0; a failed read keeps the last good
// values and clears ReadOK until the next read.
func (a *Acquirer) Acquire(now logic.TimeOfDay) logic.Snapshot {
	a.snap.Time = now
	a.snap.WaterLevel = a.readWater()

	if a.minuteBoundary(now) {
		a.readClimate()
	}
	a.last = now
	a.haveLast = true

	return a.snap
}

// Snapshot returns the most recent snapshot without reading anything.
func (a *Acquirer) Snapshot() logic.Snapshot {
	return a.snap
}

// minuteBoundary reports whether second 0 was passed since the last call,
// even if the loop did not sample it. A stall longer than a minute can leave
// the seconds field higher than before, so a changed minute or hour counts too.
func (a *Acquirer) minuteBoundary(now logic.TimeOfDay) bool {
	if !a.haveLast {
		return now.Second == 0
	}
	if now.Minute != a.last.Minute || now.Hour != a.last.Hour {
		return true
	}
	return now.Second < a.last.Second
}

// readWater returns 0 when the converter fails so the water interlock engages.
func (a *Acquirer) readWater() uint16 {
	v, err := a.adc.Read(WaterChannel)
	if err != nil {
		if !a.adcFault {
			log.Printf("sensor: water level read failed, treating as empty: %v", err)
			a.adcFault = true
		}
		return 0
	}
	if a.adcFault {
		log.Printf("sensor: water level readings recovered")
		a.adcFault = false
	}
	if v > logic.WaterLevelMax {
		v = logic.WaterLevelMax
	}
	return v
}

func (a *Acquirer) readClimate() {
	a.snap.ReadAttempted = true
	r, err := a.climate.Read()
	if err != nil {
		log.Printf("sensor: temperature/humidity read failed: %v", err)
		a.snap.ReadOK = false
		return
	}
	a.snap.Temperature = r.Temperature
	a.snap.Humidity = r.Humidity
	a.snap.ReadOK = true
}
