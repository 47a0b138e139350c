// Package status provides a thread-safe status tracker for the pill-reminder
// daemon. It is written by the control loop and read by MQTT callbacks and
// the print-state command.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/pill-reminder/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	Broker      string
	Display     string // "lcd" or "terminal"
	RTC         string // "ds3231" or "system"
	Version     string
}

// BoxStatus is the reported state of one pill box.
type BoxStatus struct {
	Name         string
	Doses        []int // configured dose hours, unused slots removed
	Level        logic.Level
	JustRefilled bool
	NextDoseHour int // 0 when nothing is upcoming
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type: safe to use after the lock is released.
type Snapshot struct {
	Wall          time.Time // RTC wall time of the last tick
	Boxes         [logic.NumBoxes]BoxStatus
	Mode          logic.DisplayMode
	Muted         bool
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update copies the controller's view and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(v logic.View, counts logic.EventCounts) {
	var boxes [logic.NumBoxes]BoxStatus
	for i, b := range v.Boxes {
		boxes[i] = BoxStatus{
			Name:         b.Name,
			Level:        b.Level(),
			JustRefilled: b.JustRefilled,
		}
		for _, h := range b.Doses {
			if h != 0 {
				boxes[i].Doses = append(boxes[i].Doses, h)
			}
		}
		if h, _, ok := logic.NextDose(b, v.Wall); ok {
			boxes[i].NextDoseHour = h
		}
	}

	t.mu.Lock()
	t.snap.Wall = v.Wall
	t.snap.Boxes = boxes
	t.snap.Mode = v.Mode
	t.snap.Muted = v.Muted
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
