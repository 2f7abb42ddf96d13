package sensor

import (
	"errors"

	"github.com/sweeney/env-controller/internal/logic"
)

// FakeClimate is a test double that returns scripted climate readings.
// Each call to Read() consumes the next result; the last one repeats.
type FakeClimate struct {
	Results []ClimateResult
	index   int
	// Calls counts Read invocations.
	Calls int
}

// ClimateResult is one scripted climate read.
type ClimateResult struct {
	Reading Reading
	Err     error
}

// Read returns the next scripted result.
func (f *FakeClimate) Read() (Reading, error) {
	f.Calls++
	if len(f.Results) == 0 {
		return Reading{}, errors.New("no climate results configured")
	}
	r := f.Results[f.index]
	if f.index < len(f.Results)-1 {
		f.index++
	}
	return r.Reading, r.Err
}

// FakeADC returns a fixed value per channel.
type FakeADC struct {
	Values map[int]uint16
	// ReadError, if set, will be returned by Read.
	ReadError error
}

// NewFakeADC creates a FakeADC reporting water on the water channel.
func NewFakeADC(water uint16) *FakeADC {
	return &FakeADC{Values: map[int]uint16{WaterChannel: water}}
}

// Read returns the configured channel value.
func (f *FakeADC) Read(channel int) (uint16, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	v, ok := f.Values[channel]
	if !ok {
		return 0, errors.New("channel not configured")
	}
	return v, nil
}

// Set changes the value reported for the water channel.
func (f *FakeADC) Set(water uint16) {
	if f.Values == nil {
		f.Values = map[int]uint16{}
	}
	f.Values[WaterChannel] = water
}

// FakeClock returns a settable time of day.
type FakeClock struct {
	T logic.TimeOfDay
}

// Now returns the configured time.
func (f *FakeClock) Now() logic.TimeOfDay {
	return f.T
}

// Tick advances the clock by one second.
func (f *FakeClock) Tick() {
	f.T.Second++
	if f.T.Second < 60 {
		return
	}
	f.T.Second = 0
	f.T.Minute++
	if f.T.Minute < 60 {
		return
	}
	f.T.Minute = 0
	f.T.Hour = (f.T.Hour + 1) % 24
}
