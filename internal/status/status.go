// Package status provides a thread-safe status tracker for the controller daemon.
// It is written by the control loop and read by the heartbeat and -print-state.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/env-controller/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	Chip        string
	Serial      string
	Baud        int
}

// Counts tracks events since startup.
type Counts struct {
	Transitions int
	// Entered counts arrivals in each state, indexed by logic.State.
	Entered   [4]int
	VentSteps int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	State     logic.State
	Sensors   logic.Snapshot
	Counts    Counts
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu            sync.RWMutex
	snap          Snapshot
	lastHeartbeat time.Time
	now           func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		lastHeartbeat: startTime,
		now:           time.Now,
	}
}

// Update sets the settled state and sensor snapshot.
// Called from the control loop on every iteration.
func (t *Tracker) Update(state logic.State, sensors logic.Snapshot) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.Sensors = sensors
	t.mu.Unlock()
}

// RecordTransition counts a logged state change into cur.
func (t *Tracker) RecordTransition(cur logic.State) {
	t.mu.Lock()
	t.snap.Counts.Transitions++
	if cur.Valid() {
		t.snap.Counts.Entered[cur]++
	}
	t.mu.Unlock()
}

// RecordVentStep counts a manual vent step.
func (t *Tracker) RecordVentStep() {
	t.mu.Lock()
	t.snap.Counts.VentSteps++
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}

// CheckHeartbeat reports whether interval has elapsed since the last
// heartbeat (or startup) and, if so, returns a snapshot taken at now.
// Returns false if interval is <= 0 (disabled).
func (t *Tracker) CheckHeartbeat(now time.Time, interval time.Duration) (Snapshot, bool) {
	if interval <= 0 {
		return Snapshot{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if now.Sub(t.lastHeartbeat) < interval {
		return Snapshot{}, false
	}
	t.lastHeartbeat = now
	s := t.snap
	s.Now = now
	return s, true
}
