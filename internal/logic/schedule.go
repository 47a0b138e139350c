package logic

import (
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

const minutesPerDay = 24 * 60

// MinutesUntil returns the minutes from hour:minute to doseHour:00, rolled
// over to the next day when the dose time has already passed. The result
// is in [0, 1440); it is 0 only at exactly doseHour:00.
func MinutesUntil(doseHour, hour, minute int) int {
	d := doseHour*60 - (hour*60 + minute)
	if d < 0 {
		d += minutesPerDay
	}
	return d
}

// dueSlots returns the untriggered slots whose window contains hour:minute.
func dueSlots(b Box, hour, minute int) []int {
	if minute < 0 || minute >= config.ScheduleWindowMinutes {
		return nil
	}
	var slots []int
	for slot, h := range b.Doses {
		if h != 0 && h == hour && !b.TriggeredToday[slot] {
			slots = append(slots, slot)
		}
	}
	return slots
}

// upcomingDose returns the first untriggered slot starting within the
// reminder window, in slot order.
func upcomingDose(b Box, hour, minute int) (doseHour int, ok bool) {
	for slot, h := range b.Doses {
		if h == 0 || b.TriggeredToday[slot] {
			continue
		}
		m := MinutesUntil(h, hour, minute)
		if m > 0 && m <= config.ReminderWindowMinutes {
			return h, true
		}
	}
	return 0, false
}

// NextDose returns the soonest dose of a box as seen from wall. Untriggered
// slots are preferred; when every slot has already fired today the earliest
// dose of tomorrow is returned.
func NextDose(b Box, wall time.Time) (doseHour, minutes int, ok bool) {
	h, m := wall.Hour(), wall.Minute()
	best := -1
	for pass := 0; pass < 2 && best < 0; pass++ {
		for slot, dose := range b.Doses {
			if dose == 0 || (pass == 0 && b.TriggeredToday[slot]) {
				continue
			}
			until := MinutesUntil(dose, h, m)
			if pass == 0 && until == 0 {
				continue
			}
			if pass == 1 && until == 0 {
				until = minutesPerDay
			}
			if best < 0 || until < best {
				best = until
				doseHour = dose
			}
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return doseHour, best, true
}

// evaluateSchedule runs the daily reset, due check and reminder check.
// Due and reminder checks run once per distinct wall-clock minute.
func (c *Controller) evaluateSchedule(wall time.Time) []Event {
	var events []Event

	day := wall.Day()
	if c.sys.lastDay != 0 && day != c.sys.lastDay {
		for i := range c.boxes {
			c.boxes[i].TriggeredToday = [config.MaxDoses]bool{}
		}
		events = append(events, Event{Type: EventDailyReset, Box: -1})
	}
	c.sys.lastDay = day

	minute := wall.Truncate(time.Minute)
	if c.sys.evaluated && minute.Equal(c.sys.lastMinute) {
		return events
	}
	c.sys.lastMinute = minute
	c.sys.evaluated = true

	h, m := wall.Hour(), wall.Minute()
	for i := range c.boxes {
		b := &c.boxes[i]
		for _, slot := range dueSlots(*b, h, m) {
			b.TriggeredToday[slot] = true
			b.ScheduleAlert = true
			b.DueHour = b.Doses[slot]
			ev := b.event(EventDoseDue)
			ev.Hour = b.Doses[slot]
			events = append(events, ev)
		}

		// Recomputed from scratch after the due check, so a slot that
		// just fired can never also be the upcoming one.
		b.Reminder = false
		b.NextDoseHour = 0
		if dose, ok := upcomingDose(*b, h, m); ok {
			b.Reminder = true
			b.NextDoseHour = dose
		}
	}
	return events
}
