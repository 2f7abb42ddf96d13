package logic

import "fmt"

// DisplayWidth is the number of columns on each display row.
const DisplayWidth = 16

// Fixed display messages.
const (
	LowWaterText = "Low water!"
	NoReadText   = "No read, retry"
)

// Outputs is what the actuators and display should show for a state.
type Outputs struct {
	Fan       bool
	Indicator Indicator
	// Line0 is written to display row 0 only when WriteLine0 is set.
	Line0      string
	WriteLine0 bool
	// Line1 is the state name shown on display row 1.
	Line1 string
}

// OutputsFor maps a state and the latest sensor snapshot to actuator outputs.
// It holds no state of its own: equal inputs always give equal outputs.
func OutputsFor(s State, snap Snapshot) Outputs {
	out := Outputs{
		Indicator: IndicatorFor(s),
		Line1:     s.String(),
	}

	switch s {
	case StateIdle:
		out.Line0 = SensorText(snap)
		out.WriteLine0 = true
	case StateRunning:
		out.Fan = true
		out.Line0 = SensorText(snap)
		out.WriteLine0 = true
	case StateError:
		out.Line0 = LowWaterText
		out.WriteLine0 = true
	}
	return out
}

// SensorText renders the temperature/humidity line for the display.
func SensorText(snap Snapshot) string {
	if !snap.ReadAttempted {
		return ""
	}
	if !snap.ReadOK {
		return NoReadText
	}
	return clip(fmt.Sprintf("H:%d T:%dF", snap.Humidity, snap.Temperature))
}

func clip(s string) string {
	if len(s) > DisplayWidth {
		return s[:DisplayWidth]
	}
	return s
}
