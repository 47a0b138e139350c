package logic

import "time"

// Debouncer tracks a single digital level and reports a change only after
// the new level has been observed continuously for the hold duration.
type Debouncer struct {
	// Current stable (debounced) level
	Stable bool
	// Whether a level different from Stable is being observed
	Pending bool
	// Time when the pending level was first observed
	PendingSince time.Time
}

// Update feeds one sample and reports whether the stable level changed.
func (d *Debouncer) Update(level bool, now time.Time, hold time.Duration) bool {
	if level == d.Stable {
		// Glitch ended before hold elapsed
		d.Pending = false
		return false
	}

	if !d.Pending {
		d.Pending = true
		d.PendingSince = now
		return false
	}

	if now.Sub(d.PendingSince) >= hold {
		d.Stable = level
		d.Pending = false
		return true
	}
	return false
}

// ButtonEvent is an edge produced by a debounced button.
type ButtonEvent uint8

const (
	ButtonNone ButtonEvent = iota
	ButtonPressed
	ButtonReleased
	ButtonLongPress
)

func (e ButtonEvent) String() string {
	switch e {
	case ButtonPressed:
		return "PRESSED"
	case ButtonReleased:
		return "RELEASED"
	case ButtonLongPress:
		return "LONG_PRESS"
	default:
		return "NONE"
	}
}

// Button turns raw press samples into debounced edges.
// LongPress fires once per hold, when the press has lasted longPress.
type Button struct {
	level     Debouncer
	debounce  time.Duration
	longPress time.Duration
	pressedAt time.Time
	long      bool
}

// NewButton creates a button with the given stability and long-press thresholds.
func NewButton(debounce, longPress time.Duration) Button {
	return Button{debounce: debounce, longPress: longPress}
}

// Update feeds one raw sample (true = pressed) and returns at most one edge.
func (b *Button) Update(pressed bool, now time.Time) ButtonEvent {
	if b.level.Update(pressed, now, b.debounce) {
		if b.level.Stable {
			b.pressedAt = now
			b.long = false
			return ButtonPressed
		}
		return ButtonReleased
	}

	if b.level.Stable && !b.long && now.Sub(b.pressedAt) >= b.longPress {
		b.long = true
		return ButtonLongPress
	}
	return ButtonNone
}

// WasLong reports whether the current or most recent press crossed the
// long-press threshold. Callers use it on ButtonReleased to tell a short
// click from the end of a long hold.
func (b *Button) WasLong() bool {
	return b.long
}
