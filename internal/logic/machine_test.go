package logic

import "testing"

var allStates = []State{StateDisabled, StateIdle, StateError, StateRunning}

// sampleTemps and sampleWater straddle both thresholds.
var (
	sampleTemps = []int{-10, 0, 20, 41, 42, 43, 45, 80}
	sampleWater = []uint16{0, 1, 200, 399, 400, 401, 500, 1023}
)

func TestEvaluateWaterInterlock(t *testing.T) {
	for _, s := range allStates {
		if s == StateDisabled {
			continue
		}
		for _, temp := range sampleTemps {
			for _, water := range sampleWater {
				if water >= WaterLevelLimit {
					continue
				}
				got := Evaluate(s, Snapshot{Temperature: temp, WaterLevel: water})
				if got != StateError {
					t.Errorf("Evaluate(%s, temp=%d water=%d): got %s, want ERROR", s, temp, water, got)
				}
			}
		}
	}
}

func TestEvaluateIdleToRunning(t *testing.T) {
	for _, temp := range sampleTemps {
		for _, water := range sampleWater {
			if temp < TemperatureLimit || water < WaterLevelLimit {
				continue
			}
			got := Evaluate(StateIdle, Snapshot{Temperature: temp, WaterLevel: water})
			if got != StateRunning {
				t.Errorf("Evaluate(IDLE, temp=%d water=%d): got %s, want RUNNING", temp, water, got)
			}
		}
	}
}

func TestEvaluateRunningToIdle(t *testing.T) {
	for _, temp := range sampleTemps {
		for _, water := range sampleWater {
			if temp >= TemperatureLimit || water < WaterLevelLimit {
				continue
			}
			got := Evaluate(StateRunning, Snapshot{Temperature: temp, WaterLevel: water})
			if got != StateIdle {
				t.Errorf("Evaluate(RUNNING, temp=%d water=%d): got %s, want IDLE", temp, water, got)
			}
		}
	}
}

func TestEvaluateStaysPut(t *testing.T) {
	tests := []struct {
		name string
		in   State
		snap Snapshot
		want State
	}{
		{"idle below limit", StateIdle, Snapshot{Temperature: 41, WaterLevel: 500}, StateIdle},
		{"running at limit", StateRunning, Snapshot{Temperature: 42, WaterLevel: 500}, StateRunning},
		{"error with good readings", StateError, Snapshot{Temperature: 20, WaterLevel: 900}, StateError},
		{"error with heat", StateError, Snapshot{Temperature: 60, WaterLevel: 900}, StateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.in, tt.snap); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvaluateErrorNeverRecovers(t *testing.T) {
	for _, temp := range sampleTemps {
		for _, water := range sampleWater {
			got := Evaluate(StateError, Snapshot{Temperature: temp, WaterLevel: water})
			if got != StateError {
				t.Errorf("Evaluate(ERROR, temp=%d water=%d): got %s, want ERROR", temp, water, got)
			}
		}
	}
}

func TestEvaluateDisabledIsSink(t *testing.T) {
	for _, temp := range sampleTemps {
		for _, water := range sampleWater {
			got := Evaluate(StateDisabled, Snapshot{Temperature: temp, WaterLevel: water})
			if got != StateDisabled {
				t.Errorf("Evaluate(DISABLED, temp=%d water=%d): got %s, want DISABLED", temp, water, got)
			}
		}
	}
}

func TestEvaluateAlwaysValid(t *testing.T) {
	for _, s := range allStates {
		for _, temp := range sampleTemps {
			for _, water := range sampleWater {
				if got := Evaluate(s, Snapshot{Temperature: temp, WaterLevel: water}); !got.Valid() {
					t.Fatalf("Evaluate(%s, temp=%d water=%d) produced invalid state %d", s, temp, water, got)
				}
			}
		}
	}
}

func TestOverrideReset(t *testing.T) {
	reset := Buttons{Reset: true}
	if got := Override(StateError, reset); got != StateIdle {
		t.Errorf("RESET on ERROR: got %s, want IDLE", got)
	}
	for _, s := range []State{StateDisabled, StateIdle, StateRunning} {
		if got := Override(s, reset); got != s {
			t.Errorf("RESET on %s: got %s, want unchanged", s, got)
		}
	}
}

func TestOverrideStart(t *testing.T) {
	start := Buttons{Start: true}
	if got := Override(StateDisabled, start); got != StateIdle {
		t.Errorf("START on DISABLED: got %s, want IDLE", got)
	}
	for _, s := range []State{StateIdle, StateError, StateRunning} {
		if got := Override(s, start); got != StateDisabled {
			t.Errorf("START on %s: got %s, want DISABLED", s, got)
		}
	}
}

func TestOverrideResetWinsOverStart(t *testing.T) {
	both := Buttons{Start: true, Reset: true}
	tests := []struct {
		in   State
		want State
	}{
		{StateError, StateIdle},
		{StateDisabled, StateDisabled},
		{StateIdle, StateIdle},
		{StateRunning, StateRunning},
	}
	for _, tt := range tests {
		if got := Override(tt.in, both); got != tt.want {
			t.Errorf("both pressed on %s: got %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOverrideNoButtons(t *testing.T) {
	for _, s := range allStates {
		if got := Override(s, Buttons{}); got != s {
			t.Errorf("no buttons on %s: got %s, want unchanged", s, got)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateDisabled, "DISABLED"},
		{StateIdle, "IDLE"},
		{StateError, "ERROR"},
		{StateRunning, "RUNNING"},
		{State(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String(): got %q, want %q", tt.s, got, tt.want)
		}
	}
}
