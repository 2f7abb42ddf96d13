package gpio

import "sync"

// FakeBoard is a test double that records outputs and returns scripted
// button levels. Safe for concurrent use so Press can run alongside a loop.
type FakeBoard struct {
	mu sync.Mutex

	// Fan is the last value written with SetFan.
	Fan bool
	// Indicator is the last mask written with SetIndicator.
	Indicator uint8
	// LEDs mirrors Indicator as per-line values.
	LEDs []int
	// FanWrites counts SetFan calls.
	FanWrites int

	start, reset bool
	// Vent is the level returned by VentPressed.
	Vent bool

	// SetError, if set, is returned by SetFan and SetIndicator.
	SetError error
	// ReadError, if set, is returned by Buttons and VentPressed.
	ReadError error

	// Closed tracks if Close was called.
	Closed bool

	onEdge EdgeHandler
}

// NewFakeBoard creates a FakeBoard that reports edges to onEdge.
func NewFakeBoard(onEdge EdgeHandler) *FakeBoard {
	return &FakeBoard{onEdge: onEdge}
}

// SetEdgeHandler replaces the edge handler.
func (f *FakeBoard) SetEdgeHandler(onEdge EdgeHandler) {
	f.mu.Lock()
	f.onEdge = onEdge
	f.mu.Unlock()
}

// Press sets the START/RESET levels and delivers an edge, as the line
// watcher would. The handler runs on the caller's goroutine.
func (f *FakeBoard) Press(start, reset bool) {
	f.mu.Lock()
	f.start, f.reset = start, reset
	h := f.onEdge
	f.mu.Unlock()
	if h != nil {
		h(start, reset)
	}
}

// Release returns both override lines to inactive and delivers an edge.
func (f *FakeBoard) Release() {
	f.Press(false, false)
}

// SetVent sets the vent button level.
func (f *FakeBoard) SetVent(pressed bool) {
	f.mu.Lock()
	f.Vent = pressed
	f.mu.Unlock()
}

// SetFan records the fan state.
func (f *FakeBoard) SetFan(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.Fan = on
	f.FanWrites++
	return nil
}

// SetIndicator records the indicator mask.
func (f *FakeBoard) SetIndicator(mask uint8) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.Indicator = mask
	f.LEDs = maskValues(mask)
	return nil
}

// Buttons returns the scripted START/RESET levels.
func (f *FakeBoard) Buttons() (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	return f.start, f.reset, nil
}

// VentPressed returns the scripted vent level.
func (f *FakeBoard) VentPressed() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return false, f.ReadError
	}
	return f.Vent, nil
}

// Close marks the board as closed and drives outputs off.
func (f *FakeBoard) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	f.Fan = false
	f.Indicator = 0
	f.LEDs = maskValues(0)
	return nil
}

// Outputs returns the recorded fan and indicator values.
func (f *FakeBoard) Outputs() (fan bool, indicator uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Fan, f.Indicator
}

// FakeBus records every write to an output bus.
type FakeBus struct {
	Writes [][]int
	// SetError, if set, is returned by SetValues.
	SetError error
}

// SetValues records a copy of values.
func (b *FakeBus) SetValues(values []int) error {
	if b.SetError != nil {
		return b.SetError
	}
	b.Writes = append(b.Writes, append([]int(nil), values...))
	return nil
}

// Last returns the most recent write, or nil.
func (b *FakeBus) Last() []int {
	if len(b.Writes) == 0 {
		return nil
	}
	return b.Writes[len(b.Writes)-1]
}
