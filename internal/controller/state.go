package controller

import (
	"sync/atomic"

	"github.com/sweeney/env-controller/internal/logic"
)

// StateCell is the current-state value shared between the control loop and
// the button edge handler. Every access is a single atomic word operation;
// neither side ever waits on the other.
type StateCell struct {
	v atomic.Uint32
}

// NewStateCell returns a cell holding initial.
func NewStateCell(initial logic.State) *StateCell {
	c := &StateCell{}
	c.v.Store(uint32(initial))
	return c
}

// Load returns the current state.
func (c *StateCell) Load() logic.State {
	return logic.State(c.v.Load())
}

// Store replaces the current state unconditionally.
func (c *StateCell) Store(s logic.State) {
	c.v.Store(uint32(s))
}

// Override applies a button press and returns the resulting state.
// It retries only if the control loop published a new state between the
// load and the swap.
func (c *StateCell) Override(b logic.Buttons) logic.State {
	for {
		cur := c.Load()
		next := logic.Override(cur, b)
		if next == cur || c.v.CompareAndSwap(uint32(cur), uint32(next)) {
			return next
		}
	}
}

// HandleEdge is the button edge handler. It only touches the cell, so it is
// safe to run from the GPIO event goroutine.
func (c *StateCell) HandleEdge(start, reset bool) {
	c.Override(logic.Buttons{Start: start, Reset: reset})
}

// Advance evaluates the sensor rules against the current state and publishes
// the result. If an override lands between the load and the publish, the
// override wins and Advance returns the overridden state unchanged; the rules
// apply to it on the next iteration.
func (c *StateCell) Advance(snap logic.Snapshot) logic.State {
	cur := c.Load()
	next := logic.Evaluate(cur, snap)
	if next == cur {
		return cur
	}
	if c.v.CompareAndSwap(uint32(cur), uint32(next)) {
		return next
	}
	return c.Load()
}
