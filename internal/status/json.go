package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/env-controller/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	State         string      `json:"state"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	Sensors       SensorsJSON `json:"sensors"`
	Counts        CountsJSON  `json:"event_counts"`
	Config        ConfigJSON  `json:"config"`
}

// SensorsJSON is the JSON representation of the latest sensor snapshot.
type SensorsJSON struct {
	Temperature int    `json:"temperature"`
	Humidity    int    `json:"humidity"`
	WaterLevel  uint16 `json:"water_level"`
	ReadOK      bool   `json:"read_ok"`
	Clock       string `json:"clock"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Transitions int `json:"transitions"`
	Disabled    int `json:"disabled"`
	Idle        int `json:"idle"`
	Error       int `json:"error"`
	Running     int `json:"running"`
	VentSteps   int `json:"vent_steps"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Chip        string `json:"chip"`
	Serial      string `json:"serial"`
	Baud        int    `json:"baud"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		State:         snap.State.String(),
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Sensors: SensorsJSON{
			Temperature: snap.Sensors.Temperature,
			Humidity:    snap.Sensors.Humidity,
			WaterLevel:  snap.Sensors.WaterLevel,
			ReadOK:      snap.Sensors.ReadOK,
			Clock:       snap.Sensors.Time.String(),
		},
		Counts: CountsJSON{
			Transitions: snap.Counts.Transitions,
			Disabled:    snap.Counts.Entered[logic.StateDisabled],
			Idle:        snap.Counts.Entered[logic.StateIdle],
			Error:       snap.Counts.Entered[logic.StateError],
			Running:     snap.Counts.Entered[logic.StateRunning],
			VentSteps:   snap.Counts.VentSteps,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Chip:        snap.Config.Chip,
			Serial:      snap.Config.Serial,
			Baud:        snap.Config.Baud,
		},
	}
}

// FormatJSON returns indented JSON status (used by -print-state).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns compact JSON status tagged with event
// (used by heartbeat and shutdown log lines).
func FormatStatusEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
