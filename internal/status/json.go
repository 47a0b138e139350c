package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/pill-reminder/internal/logic"
)

// wallFormat renders the RTC's zoneless wall time.
const wallFormat = "2006-01-02T15:04:05"

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Wall          string     `json:"wall_time"`
	Mode          string     `json:"display_mode"`
	Muted         bool       `json:"muted"`
	Boxes         []BoxJSON  `json:"boxes"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// BoxJSON is the JSON representation of one box.
type BoxJSON struct {
	Box      int    `json:"box"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Doses    []int  `json:"doses"`
	NextDose int    `json:"next_dose,omitempty"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Empty        int `json:"empty"`
	Refilled     int `json:"refilled"`
	Due          int `json:"due"`
	Acknowledged int `json:"acknowledged"`
	Reset        int `json:"reset"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	Display     string `json:"display"`
	RTC         string `json:"rtc"`
	Version     string `json:"version"`
}

// BoxState names a box's reported state: its alert level, or REFILLED
// while the refill confirmation is showing, or OK.
func BoxState(b BoxStatus) string {
	switch {
	case b.Level != logic.LevelNone:
		return b.Level.String()
	case b.JustRefilled:
		return "REFILLED"
	default:
		return "OK"
	}
}

func buildInner(snap Snapshot) StatusInner {
	boxes := make([]BoxJSON, 0, len(snap.Boxes))
	for i, b := range snap.Boxes {
		doses := b.Doses
		if doses == nil {
			doses = []int{}
		}
		boxes = append(boxes, BoxJSON{
			Box:      i + 1,
			Name:     b.Name,
			State:    BoxState(b),
			Doses:    doses,
			NextDose: b.NextDoseHour,
		})
	}

	wall := ""
	if !snap.Wall.IsZero() {
		wall = snap.Wall.Format(wallFormat)
	}

	return StatusInner{
		Wall:          wall,
		Mode:          snap.Mode.String(),
		Muted:         snap.Muted,
		Boxes:         boxes,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Empty:        snap.Counts.Empty,
			Refilled:     snap.Counts.Refilled,
			Due:          snap.Counts.Due,
			Acknowledged: snap.Counts.Acknowledged,
			Reset:        snap.Counts.Reset,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			Display:     snap.Config.Display,
			RTC:         snap.Config.RTC,
			Version:     snap.Config.Version,
		},
	}
}

// FormatJSON returns the indented JSON status for print-state (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
