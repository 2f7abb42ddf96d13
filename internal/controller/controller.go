// Package controller runs one iteration of the environmental control loop:
// sample the sensors, settle the state, drive the outputs, and log changes.
package controller

import (
	"log"

	"github.com/sweeney/env-controller/internal/eventlog"
	"github.com/sweeney/env-controller/internal/gpio"
	"github.com/sweeney/env-controller/internal/logic"
	"github.com/sweeney/env-controller/internal/sensor"
	"github.com/sweeney/env-controller/internal/status"
)

// Display shows one line of text per row.
type Display interface {
	Line(row int, text string) error
}

// Vent moves the vent motor by count micro-steps.
type Vent interface {
	Step(count int) error
}

// Deps are the collaborators of a Controller. Display, Vent and Tracker
// may be nil.
type Deps struct {
	Clock    sensor.Clock
	Acquirer *sensor.Acquirer
	Board    gpio.Board
	Display  Display
	Vent     Vent
	Events   *eventlog.Logger
	Tracker  *status.Tracker
}

// Controller owns the main-loop side of the state machine. Step must only be
// called from one goroutine; the shared state is reached concurrently only
// through the StateCell.
type Controller struct {
	cell *StateCell
	prev logic.State
	d    Deps

	faults map[string]bool
}

// New creates a Controller over cell. The previous-state slot starts at the
// cell's current value, so the first iteration logs nothing unless the state
// changes during it.
func New(cell *StateCell, d Deps) *Controller {
	return &Controller{
		cell:   cell,
		prev:   cell.Load(),
		d:      d,
		faults: make(map[string]bool),
	}
}

// State returns the shared current state.
func (c *Controller) State() logic.State {
	return c.cell.Load()
}

// Interrupt applies a button override. It is what the edge handler calls.
func (c *Controller) Interrupt(b logic.Buttons) logic.State {
	return c.cell.Override(b)
}

// Step runs one loop iteration and returns the settled state.
func (c *Controller) Step() logic.State {
	now := c.d.Clock.Now()
	snap := c.d.Acquirer.Acquire(now)

	cur := c.cell.Advance(snap)
	c.apply(logic.OutputsFor(cur, snap))
	c.pollVent()

	if cur != c.prev {
		c.d.Events.Transition(c.prev, cur, now)
		log.Printf("controller: %s -> %s at %s", c.prev, cur, now)
		if c.d.Tracker != nil {
			c.d.Tracker.RecordTransition(cur)
		}
	}
	c.prev = cur

	if c.d.Tracker != nil {
		c.d.Tracker.Update(cur, snap)
	}
	return cur
}

func (c *Controller) apply(out logic.Outputs) {
	c.check("fan", c.d.Board.SetFan(out.Fan))
	c.check("indicator", c.d.Board.SetIndicator(uint8(out.Indicator)))

	if c.d.Display == nil {
		return
	}
	var err error
	if out.WriteLine0 {
		err = c.d.Display.Line(0, out.Line0)
	}
	if err == nil {
		err = c.d.Display.Line(1, out.Line1)
	}
	c.check("display", err)
}

func (c *Controller) pollVent() {
	pressed, err := c.d.Board.VentPressed()
	c.check("vent button", err)
	if !pressed {
		return
	}
	c.d.Events.VentMoved()
	if c.d.Vent == nil {
		return
	}
	err = c.d.Vent.Step(1)
	c.check("vent motor", err)
	if err == nil && c.d.Tracker != nil {
		c.d.Tracker.RecordVentStep()
	}
}

// check logs the first failure of an output and its recovery, not every
// iteration in between.
func (c *Controller) check(what string, err error) {
	failing := c.faults[what]
	switch {
	case err != nil && !failing:
		log.Printf("controller: %s error: %v", what, err)
		c.faults[what] = true
	case err == nil && failing:
		log.Printf("controller: %s recovered", what)
		c.faults[what] = false
	}
}

// Shutdown turns the fan off and darkens the indicators.
func (c *Controller) Shutdown() error {
	if err := c.d.Board.SetFan(false); err != nil {
		return err
	}
	if err := c.d.Board.SetIndicator(0); err != nil {
		return err
	}
	if c.d.Display != nil {
		if err := c.d.Display.Line(0, ""); err != nil {
			return err
		}
		return c.d.Display.Line(1, "")
	}
	return nil
}
