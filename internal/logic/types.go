// Package logic contains the pure alert state machine for the pill reminder.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import (
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

// NumBoxes is the fixed number of pill boxes tracked by the controller.
const NumBoxes = config.NumBoxes

// EventType identifies a state transition worth logging.
type EventType string

const (
	EventBoxEmpty     EventType = "BOX_EMPTY"
	EventBoxRefilled  EventType = "BOX_REFILLED"
	EventDoseDue      EventType = "DOSE_DUE"
	EventDailyReset   EventType = "DAILY_RESET"
	EventAcknowledged EventType = "ACKNOWLEDGED"
	EventForceReset   EventType = "FORCE_RESET"
	EventModeChanged  EventType = "MODE_CHANGED"
)

// Event is a transition emitted by one tick of the controller.
// Box is -1 for events that are not tied to a single box.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Box       int
	BoxName   string
	Hour      int // dose hour for DOSE_DUE
}

// Level is an alert priority. Higher values win.
type Level int

const (
	LevelNone Level = iota
	LevelReminder
	LevelDue
	LevelEmpty
)

func (l Level) String() string {
	switch l {
	case LevelReminder:
		return "REMINDER"
	case LevelDue:
		return "DUE"
	case LevelEmpty:
		return "EMPTY"
	default:
		return "NONE"
	}
}

// DisplayMode selects the informational screen shown when nothing is alerting.
type DisplayMode int

const (
	ModeClock DisplayMode = iota
	ModeNextDose
	ModeStatus

	numModes = 3
)

func (m DisplayMode) String() string {
	switch m {
	case ModeClock:
		return "CLOCK"
	case ModeNextDose:
		return "NEXT_DOSE"
	case ModeStatus:
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}

// Next returns the following mode, wrapping around.
func (m DisplayMode) Next() DisplayMode {
	return (m + 1) % numModes
}

// Input is one sample of every input the controller fuses.
type Input struct {
	// Time is the monotonic tick time used for debounce and blink windows.
	Time time.Time
	// Wall is the real-time clock reading used for the dose schedule.
	Wall time.Time

	Empty  [NumBoxes]bool // true = box empty
	Menu   bool           // true = pressed
	Select bool
}

// Outputs is the actuator state after a tick.
type Outputs struct {
	LEDs   [NumBoxes]bool
	Buzzer bool
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Empty        int
	Refilled     int
	Due          int
	Acknowledged int
	Reset        int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
