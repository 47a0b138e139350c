package logic

import (
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

// Level returns the highest alert priority currently held by the box.
func (b Box) Level() Level {
	switch {
	case b.EmptyAlert:
		return LevelEmpty
	case b.ScheduleAlert:
		return LevelDue
	case b.Reminder:
		return LevelReminder
	default:
		return LevelNone
	}
}

// Current returns the highest priority level across boxes and the box that
// holds it. Ties go to the lowest box index. The index is -1 for LevelNone.
func Current(boxes []Box) (Level, int) {
	level, idx := LevelNone, -1
	for i, b := range boxes {
		if l := b.Level(); l > level {
			level, idx = l, i
		}
	}
	return level, idx
}

// driveLED applies the LED policy for one tick: refill confirmation is solid,
// hard alerts blink fast, reminders blink slow, anything else is dark.
func (b Box) driveLED(now time.Time) Box {
	switch {
	case b.JustRefilled:
		b.LEDOn = true
	case b.EmptyAlert || b.ScheduleAlert:
		b = b.blink(now, config.FastBlink)
	case b.Reminder:
		b = b.blink(now, config.SlowBlink)
	default:
		b.LEDOn = false
		b.LEDToggledAt = time.Time{}
	}
	return b
}

func (b Box) blink(now time.Time, halfPeriod time.Duration) Box {
	if b.LEDToggledAt.IsZero() || now.Sub(b.LEDToggledAt) >= halfPeriod {
		b.LEDOn = !b.LEDOn
		b.LEDToggledAt = now
	}
	return b
}

// arbitrate expires transient state and drives LEDs and the buzzer.
func (c *Controller) arbitrate(now time.Time) {
	hard := false
	for i := range c.boxes {
		b := &c.boxes[i]
		if b.JustRefilled && !now.Before(b.RefilledUntil) {
			b.JustRefilled = false
		}
		*b = b.driveLED(now)
		if b.EmptyAlert || b.ScheduleAlert {
			hard = true
		}
	}

	if c.sys.RefillOverlay && !now.Before(c.sys.RefillOverlayUntil) {
		c.sys.RefillOverlay = false
		c.sys.refresh = true
	}
	if c.sys.AckOverlay && !now.Before(c.sys.AckUntil) {
		c.sys.AckOverlay = false
		c.sys.refresh = true
	}

	c.sys.AlertActive = hard

	// Reminders never sound the buzzer.
	if c.sys.Muted || !hard {
		c.sys.BuzzerOn = false
		c.sys.BuzzerToggledAt = time.Time{}
		return
	}
	if c.sys.BuzzerToggledAt.IsZero() || now.Sub(c.sys.BuzzerToggledAt) >= config.BuzzerHalfPeriod {
		c.sys.BuzzerOn = !c.sys.BuzzerOn
		c.sys.BuzzerToggledAt = now
	}
}

// Acknowledge silences the buzzer and clears due and reminder alerts on
// every box. Empty-box alerts are kept: only a refill or Reset clears them.
func (c *Controller) Acknowledge(now time.Time) Event {
	c.sys.Muted = true
	for i := range c.boxes {
		c.boxes[i].ScheduleAlert = false
		c.boxes[i].Reminder = false
	}
	c.sys.AckOverlay = true
	c.sys.AckUntil = now.Add(config.AckMessageDuration)
	c.sys.refresh = true
	c.counts.Acknowledged++
	return Event{Type: EventAcknowledged, Box: -1}
}

// Reset force-clears the empty alert of every box whose sensor currently
// reads not-empty. It is the operator override for a state that has not
// caught up with the hardware. The mute flag is left alone.
func (c *Controller) Reset(now time.Time, empty [NumBoxes]bool) []Event {
	var events []Event
	for i := range c.boxes {
		b := &c.boxes[i]
		if !b.EmptyAlert || empty[i] {
			continue
		}
		*b = b.forceRefilled(now)
		c.showRefill(i, now)
		c.counts.Reset++
		events = append(events, b.event(EventForceReset))
	}
	c.sys.refresh = true
	return events
}

func (c *Controller) showRefill(box int, now time.Time) {
	c.sys.RefillOverlay = true
	c.sys.RefillBox = box
	c.sys.RefillOverlayUntil = now.Add(config.RefillDisplay)
	c.sys.refresh = true
}
