package logic

import "testing"

func TestOutputsForTable(t *testing.T) {
	snap := Snapshot{Temperature: 45, Humidity: 30, WaterLevel: 500, ReadOK: true, ReadAttempted: true}

	tests := []struct {
		state      State
		fan        bool
		indicator  Indicator
		writeLine0 bool
		line0      string
	}{
		{StateDisabled, false, IndicatorYellow, false, ""},
		{StateIdle, false, IndicatorGreen, true, "H:30 T:45F"},
		{StateRunning, true, IndicatorBlue, true, "H:30 T:45F"},
		{StateError, false, IndicatorRed, true, "Low water!"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			out := OutputsFor(tt.state, snap)
			if out.Fan != tt.fan {
				t.Errorf("Fan: got %v, want %v", out.Fan, tt.fan)
			}
			if out.Indicator != tt.indicator {
				t.Errorf("Indicator: got %04b, want %04b", out.Indicator, tt.indicator)
			}
			if out.WriteLine0 != tt.writeLine0 {
				t.Errorf("WriteLine0: got %v, want %v", out.WriteLine0, tt.writeLine0)
			}
			if out.Line0 != tt.line0 {
				t.Errorf("Line0: got %q, want %q", out.Line0, tt.line0)
			}
			if out.Line1 != tt.state.String() {
				t.Errorf("Line1: got %q, want %q", out.Line1, tt.state.String())
			}
		})
	}
}

func TestOutputsForIdempotent(t *testing.T) {
	snap := Snapshot{Temperature: 20, Humidity: 55, WaterLevel: 800, ReadOK: true, ReadAttempted: true}
	for _, s := range allStates {
		first := OutputsFor(s, snap)
		second := OutputsFor(s, snap)
		if first != second {
			t.Errorf("%s: outputs differ between calls: %+v vs %+v", s, first, second)
		}
	}
}

func TestIndicatorsAreDistinct(t *testing.T) {
	seen := map[Indicator]State{}
	for _, s := range allStates {
		ind := IndicatorFor(s)
		if ind == 0 {
			t.Errorf("%s: no indicator lit", s)
		}
		if other, ok := seen[ind]; ok {
			t.Errorf("%s and %s share indicator %04b", s, other, ind)
		}
		seen[ind] = s
	}
	if got := IndicatorFor(State(7)); got != 0 {
		t.Errorf("invalid state indicator: got %04b, want 0", got)
	}
}

func TestSensorText(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"before first read", Snapshot{}, ""},
		{"failed read", Snapshot{ReadAttempted: true, Temperature: 30}, NoReadText},
		{"good read", Snapshot{ReadAttempted: true, ReadOK: true, Temperature: 23, Humidity: 41}, "H:41 T:23F"},
		{"negative temperature", Snapshot{ReadAttempted: true, ReadOK: true, Temperature: -5, Humidity: 90}, "H:90 T:-5F"},
		{"clipped to width", Snapshot{ReadAttempted: true, ReadOK: true, Temperature: -2147483648, Humidity: 100}, "H:100 T:-2147483"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SensorText(tt.snap)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(got) > DisplayWidth {
				t.Errorf("text %q exceeds %d columns", got, DisplayWidth)
			}
		})
	}
}

func TestAppendTimeOfDay(t *testing.T) {
	tests := []struct {
		in   TimeOfDay
		want string
	}{
		{TimeOfDay{0, 0, 0}, "0:0:0"},
		{TimeOfDay{12, 5, 3}, "12:5:3"},
		{TimeOfDay{23, 59, 59}, "23:59:59"},
		{TimeOfDay{9, 10, 0}, "9:10:0"},
	}
	for _, tt := range tests {
		got := string(AppendTimeOfDay(nil, tt.in))
		if got != tt.want {
			t.Errorf("AppendTimeOfDay(%+v): got %q, want %q", tt.in, got, tt.want)
		}
		if tt.in.String() != tt.want {
			t.Errorf("String(%+v): got %q, want %q", tt.in, tt.in.String(), tt.want)
		}
	}
}
