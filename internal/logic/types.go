// Package logic contains the pure control logic of the environmental controller.
// This package has NO external dependencies (no GPIO, serial, OS, or time.Sleep).
// Sensor values and wall-clock readings are always passed in.
package logic

// State is the control machine state. It fits in a single byte so the shared
// copy can be read and written in one indivisible operation.
type State uint8

// Numeric order matches the indicator and name tables below.
const (
	StateDisabled State = iota
	StateIdle
	StateError
	StateRunning
)

var stateNames = [...]string{
	StateDisabled: "DISABLED",
	StateIdle:     "IDLE",
	StateError:    "ERROR",
	StateRunning:  "RUNNING",
}

// String returns the human-readable state name used on the display and in the log.
func (s State) String() string {
	if !s.Valid() {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the four defined states.
func (s State) Valid() bool {
	return s <= StateRunning
}

// Thresholds are fixed for the lifetime of the process.
const (
	TemperatureLimit = 42
	WaterLevelLimit  = 400
)

// WaterLevelMax is the largest value a 10-bit conversion can produce.
const WaterLevelMax = 1023

// TimeOfDay is a real-time clock reading.
type TimeOfDay struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

// Snapshot is the sensor state used for one evaluation cycle.
type Snapshot struct {
	Temperature int
	Humidity    int
	WaterLevel  uint16 // raw 10-bit conversion, 0..1023
	// ReadOK is the result of the most recent temperature/humidity read.
	ReadOK bool
	// ReadAttempted is false until the first temperature/humidity read.
	ReadAttempted bool
	Time          TimeOfDay
}

// Buttons holds the override line levels sampled at interrupt time.
type Buttons struct {
	Start bool
	Reset bool
}

// Indicator is a bitmask over the status LED bank.
type Indicator uint8

const (
	IndicatorGreen Indicator = 1 << iota
	IndicatorYellow
	IndicatorRed
	IndicatorBlue
)

var indicatorMap = [...]Indicator{
	StateDisabled: IndicatorYellow,
	StateIdle:     IndicatorGreen,
	StateError:    IndicatorRed,
	StateRunning:  IndicatorBlue,
}

// IndicatorFor returns the LED pattern for a state. Invalid states light nothing.
func IndicatorFor(s State) Indicator {
	if !s.Valid() {
		return 0
	}
	return indicatorMap[s]
}
