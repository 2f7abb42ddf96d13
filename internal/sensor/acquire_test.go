package sensor

import (
	"errors"
	"testing"

	"github.com/sweeney/env-controller/internal/logic"
)

func TestAcquireReadsWaterEveryCall(t *testing.T) {
	adc := NewFakeADC(512)
	climate := &FakeClimate{Results: []ClimateResult{{Reading: Reading{Temperature: 20, Humidity: 40}}}}
	a := NewAcquirer(climate, adc)

	snap := a.Acquire(logic.TimeOfDay{Hour: 10, Minute: 0, Second: 15})
	if snap.WaterLevel != 512 {
		t.Errorf("WaterLevel: got %d, want 512", snap.WaterLevel)
	}

	adc.Set(300)
	snap = a.Acquire(logic.TimeOfDay{Hour: 10, Minute: 0, Second: 15})
	if snap.WaterLevel != 300 {
		t.Errorf("WaterLevel: got %d, want 300", snap.WaterLevel)
	}
	if climate.Calls != 0 {
		t.Errorf("climate read %d times mid-minute, want 0", climate.Calls)
	}
}

func TestAcquireClimateOnMinuteBoundary(t *testing.T) {
	climate := &FakeClimate{Results: []ClimateResult{{Reading: Reading{Temperature: 45, Humidity: 33}}}}
	a := NewAcquirer(climate, NewFakeADC(600))

	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 1, Second: 58})
	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 1, Second: 59})
	if climate.Calls != 0 {
		t.Fatalf("climate read before boundary: %d calls", climate.Calls)
	}

	snap := a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 2, Second: 0})
	if climate.Calls != 1 {
		t.Fatalf("climate calls at boundary: got %d, want 1", climate.Calls)
	}
	if snap.Temperature != 45 || snap.Humidity != 33 {
		t.Errorf("reading: got T=%d H=%d, want T=45 H=33", snap.Temperature, snap.Humidity)
	}
	if !snap.ReadOK || !snap.ReadAttempted {
		t.Errorf("flags: ReadOK=%v ReadAttempted=%v, want both true", snap.ReadOK, snap.ReadAttempted)
	}

	// Still inside second 0: no second read.
	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 2, Second: 0})
	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 2, Second: 1})
	if climate.Calls != 1 {
		t.Errorf("climate calls after boundary: got %d, want 1", climate.Calls)
	}
}

func TestAcquireBoundarySkippedSecondZero(t *testing.T) {
	climate := &FakeClimate{Results: []ClimateResult{{Reading: Reading{Temperature: 21, Humidity: 50}}}}
	a := NewAcquirer(climate, NewFakeADC(600))

	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 1, Second: 59})
	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 2, Second: 1})
	if climate.Calls != 1 {
		t.Errorf("climate calls: got %d, want 1", climate.Calls)
	}
}

func TestAcquireStallAcrossMinute(t *testing.T) {
	tests := []struct {
		name      string
		from, to  logic.TimeOfDay
		wantCalls int
	}{
		{"later second in next minute", logic.TimeOfDay{Hour: 10, Minute: 0, Second: 30}, logic.TimeOfDay{Hour: 10, Minute: 1, Second: 45}, 1},
		{"same second in next minute", logic.TimeOfDay{Hour: 10, Minute: 0, Second: 30}, logic.TimeOfDay{Hour: 10, Minute: 1, Second: 30}, 1},
		{"next hour", logic.TimeOfDay{Hour: 10, Minute: 59, Second: 10}, logic.TimeOfDay{Hour: 11, Minute: 59, Second: 20}, 1},
		{"same minute", logic.TimeOfDay{Hour: 10, Minute: 0, Second: 30}, logic.TimeOfDay{Hour: 10, Minute: 0, Second: 45}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			climate := &FakeClimate{Results: []ClimateResult{{Reading: Reading{Temperature: 21, Humidity: 50}}}}
			a := NewAcquirer(climate, NewFakeADC(600))

			a.Acquire(tt.from)
			a.Acquire(tt.to)
			if climate.Calls != tt.wantCalls {
				t.Errorf("climate calls: got %d, want %d", climate.Calls, tt.wantCalls)
			}
		})
	}
}

func TestAcquireFirstSampleOnSecondZero(t *testing.T) {
	climate := &FakeClimate{Results: []ClimateResult{{Reading: Reading{Temperature: 21, Humidity: 50}}}}
	a := NewAcquirer(climate, NewFakeADC(600))

	a.Acquire(logic.TimeOfDay{Hour: 8, Minute: 2, Second: 0})
	if climate.Calls != 1 {
		t.Errorf("climate calls: got %d, want 1", climate.Calls)
	}
}

func TestAcquireFailedReadKeepsLastValues(t *testing.T) {
	climate := &FakeClimate{Results: []ClimateResult{
		{Reading: Reading{Temperature: 44, Humidity: 20}},
		{Err: errors.New("checksum mismatch")},
		{Reading: Reading{Temperature: 30, Humidity: 25}},
	}}
	a := NewAcquirer(climate, NewFakeADC(600))

	a.Acquire(logic.TimeOfDay{Minute: 0, Second: 0})

	a.Acquire(logic.TimeOfDay{Minute: 0, Second: 59})
	snap := a.Acquire(logic.TimeOfDay{Minute: 1, Second: 0})
	if snap.ReadOK {
		t.Error("expected ReadOK=false after failed read")
	}
	if snap.Temperature != 44 || snap.Humidity != 20 {
		t.Errorf("retained reading: got T=%d H=%d, want T=44 H=20", snap.Temperature, snap.Humidity)
	}

	// Flag stays false until the next read.
	snap = a.Acquire(logic.TimeOfDay{Minute: 1, Second: 30})
	if snap.ReadOK {
		t.Error("ReadOK changed without a read")
	}

	snap = a.Acquire(logic.TimeOfDay{Minute: 2, Second: 0})
	if !snap.ReadOK || snap.Temperature != 30 {
		t.Errorf("after recovery: ReadOK=%v T=%d, want true 30", snap.ReadOK, snap.Temperature)
	}
}

func TestAcquireADCFailureReadsAsEmpty(t *testing.T) {
	adc := NewFakeADC(700)
	a := NewAcquirer(&FakeClimate{}, adc)

	adc.ReadError = errors.New("conversion timeout")
	snap := a.Acquire(logic.TimeOfDay{Second: 10})
	if snap.WaterLevel != 0 {
		t.Errorf("WaterLevel on ADC failure: got %d, want 0", snap.WaterLevel)
	}

	adc.ReadError = nil
	snap = a.Acquire(logic.TimeOfDay{Second: 11})
	if snap.WaterLevel != 700 {
		t.Errorf("WaterLevel after recovery: got %d, want 700", snap.WaterLevel)
	}
}

func TestAcquireClampsWaterLevel(t *testing.T) {
	a := NewAcquirer(&FakeClimate{}, NewFakeADC(4000))
	snap := a.Acquire(logic.TimeOfDay{Second: 10})
	if snap.WaterLevel != logic.WaterLevelMax {
		t.Errorf("WaterLevel: got %d, want %d", snap.WaterLevel, logic.WaterLevelMax)
	}
}

func TestAcquireRecordsTime(t *testing.T) {
	a := NewAcquirer(&FakeClimate{}, NewFakeADC(500))
	now := logic.TimeOfDay{Hour: 13, Minute: 7, Second: 9}
	if got := a.Acquire(now).Time; got != now {
		t.Errorf("Time: got %v, want %v", got, now)
	}
	if got := a.Snapshot().Time; got != now {
		t.Errorf("Snapshot().Time: got %v, want %v", got, now)
	}
}

func TestFakeClockTick(t *testing.T) {
	c := &FakeClock{T: logic.TimeOfDay{Hour: 23, Minute: 59, Second: 59}}
	c.Tick()
	want := logic.TimeOfDay{}
	if c.Now() != want {
		t.Errorf("after tick: got %v, want %v", c.Now(), want)
	}
}
