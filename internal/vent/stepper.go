// Package vent drives the vent damper's 4-wire stepper motor.
package vent

import (
	"fmt"
	"time"
)

// Defaults for the 28BYJ-48 geared stepper fitted to the vent.
const (
	DefaultStepsPerRev = 2038
	DefaultRPM         = 2
)

// phases is the four-wire full-step coil sequence.
var phases = [4][4]int{
	{1, 0, 1, 0},
	{0, 1, 1, 0},
	{0, 1, 0, 1},
	{1, 0, 0, 1},
}

// Bus writes the four coil lines at once.
type Bus interface {
	SetValues(values []int) error
}

// Stepper moves the vent one coil phase at a time.
// Not safe for concurrent use.
type Stepper struct {
	bus   Bus
	delay time.Duration
	sleep func(time.Duration)
	// phase indexes phases; position is the net step count since start.
	phase    int
	position int
}

// NewStepper creates a Stepper on bus. stepsPerRev and rpm set the delay
// between steps; sleep may be nil to use time.Sleep.
func NewStepper(bus Bus, stepsPerRev, rpm int, sleep func(time.Duration)) (*Stepper, error) {
	if stepsPerRev <= 0 || rpm <= 0 {
		return nil, fmt.Errorf("stepper: invalid speed %d steps/rev at %d rpm", stepsPerRev, rpm)
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Stepper{
		bus:   bus,
		delay: StepDelay(stepsPerRev, rpm),
		sleep: sleep,
	}, nil
}

// StepDelay is the pause between steps for the given speed.
func StepDelay(stepsPerRev, rpm int) time.Duration {
	return time.Minute / time.Duration(stepsPerRev*rpm)
}

// Step advances count steps; a negative count reverses. Each step waits one
// step delay before energising the next phase.
func (s *Stepper) Step(count int) error {
	dir := 1
	if count < 0 {
		dir = -1
		count = -count
	}
	for i := 0; i < count; i++ {
		s.sleep(s.delay)
		next := (s.phase + dir + len(phases)) % len(phases)
		if err := s.bus.SetValues(phases[next][:]); err != nil {
			return fmt.Errorf("step vent: %w", err)
		}
		s.phase = next
		s.position += dir
	}
	return nil
}

// Position returns the net number of steps taken.
func (s *Stepper) Position() int {
	return s.position
}
