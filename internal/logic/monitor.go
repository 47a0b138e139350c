package logic

import (
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

// Box is the live state of one pill container.
type Box struct {
	Name  string
	Index int
	// Dose hours; 0 marks an unused slot.
	Doses [config.MaxDoses]int
	// Set when a slot fires; cleared only at day rollover.
	TriggeredToday [config.MaxDoses]bool

	IsEmpty       bool
	EmptyAlert    bool
	ScheduleAlert bool
	Reminder      bool
	JustRefilled  bool
	RefilledUntil time.Time

	LEDOn        bool
	LEDToggledAt time.Time

	// Hour of the dose the reminder refers to; 0 when no reminder.
	NextDoseHour int
	// Hour of the slot that last raised ScheduleAlert.
	DueHour int

	// Debounced presence sensor, true = empty.
	Sensor Debouncer
}

// NewBox creates a box from its configured schedule. The sensor starts out
// believing the box is full, so a box empty at boot alerts once the reading
// is stable.
func NewBox(index int, cfg config.BoxConfig) Box {
	return Box{
		Name:  cfg.Name,
		Index: index,
		Doses: cfg.Doses,
	}
}

func (b Box) event(t EventType) Event {
	return Event{Type: t, Box: b.Index, BoxName: b.Name}
}

// Sense feeds one raw presence reading and returns the updated box plus the
// transition events it produced. A stable reading never produces an event.
//
// BOX_EMPTY asks the caller to unmute the buzzer and refresh the display.
// BOX_REFILLED asks the caller to mute the buzzer, refresh the display and
// show the refill overlay.
func (b Box) Sense(empty bool, now time.Time) (Box, []Event) {
	if !b.Sensor.Update(empty, now, config.SensorDebounce) {
		return b, nil
	}

	if b.Sensor.Stable {
		b.IsEmpty = true
		b.EmptyAlert = true
		b.JustRefilled = false
		b.RefilledUntil = time.Time{}
		return b, []Event{b.event(EventBoxEmpty)}
	}

	b.IsEmpty = false
	b.EmptyAlert = false
	b.JustRefilled = true
	b.RefilledUntil = now.Add(config.RefillDisplay)
	b.LEDOn = false
	b.LEDToggledAt = time.Time{}
	return b, []Event{b.event(EventBoxRefilled)}
}

// forceRefilled clears an empty alert when the sensor already reads full.
// The debouncer is resynchronised so the stale stable level cannot later
// produce a second refill event.
func (b Box) forceRefilled(now time.Time) Box {
	b.IsEmpty = false
	b.EmptyAlert = false
	b.JustRefilled = true
	b.RefilledUntil = now.Add(config.RefillDisplay)
	b.LEDOn = false
	b.LEDToggledAt = time.Time{}
	b.Sensor = Debouncer{}
	return b
}
