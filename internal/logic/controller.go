package logic

import (
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

// System is the controller-wide state shared by all boxes.
type System struct {
	Mode DisplayMode

	Muted           bool
	BuzzerOn        bool
	BuzzerToggledAt time.Time

	// True while any box holds an empty or due alert.
	AlertActive bool

	RefillOverlay      bool
	RefillBox          int
	RefillOverlayUntil time.Time

	AckOverlay bool
	AckUntil   time.Time

	wall       time.Time
	lastMinute time.Time
	lastDay    int
	evaluated  bool
	refresh    bool
}

// Controller fuses sensors, the dose schedule and buttons into alert state.
// It is not safe for concurrent use; the control loop is its only caller.
type Controller struct {
	boxes  [NumBoxes]Box
	sys    System
	menu   Button
	sel    Button
	counts EventCounts

	startTime     time.Time
	lastHeartbeat time.Time
}

// NewController creates a controller for the given dose table.
// The startTime is used for calculating uptime in heartbeat events.
func NewController(boxes [NumBoxes]config.BoxConfig, startTime time.Time) *Controller {
	c := &Controller{
		menu:          NewButton(config.ButtonDebounce, config.LongPress),
		sel:           NewButton(config.ButtonDebounce, config.LongPress),
		startTime:     startTime,
		lastHeartbeat: startTime,
		sys:           System{RefillBox: -1, refresh: true},
	}
	for i, cfg := range boxes {
		c.boxes[i] = NewBox(i, cfg)
	}
	return c
}

// Update runs box detection, schedule evaluation and arbitration, in that
// order, and returns the events produced. Later stages see the state left
// by earlier ones within the same call.
func (c *Controller) Update(in Input) []Event {
	var events []Event
	for i := range c.boxes {
		var evs []Event
		c.boxes[i], evs = c.boxes[i].Sense(in.Empty[i], in.Time)
		events = append(events, evs...)
	}

	c.sys.wall = in.Wall
	events = append(events, c.evaluateSchedule(in.Wall)...)

	c.apply(events, in.Time)
	c.arbitrate(in.Time)

	stamp(events, in.Wall)
	return events
}

// apply turns event intents into system state. Mutes are applied before
// unmutes so a new fault in the same tick as a refill stays audible.
func (c *Controller) apply(events []Event, now time.Time) {
	unmute := false
	for _, e := range events {
		switch e.Type {
		case EventBoxEmpty:
			c.counts.Empty++
			unmute = true
		case EventDoseDue:
			c.counts.Due++
			unmute = true
		case EventDailyReset:
			unmute = true
		case EventBoxRefilled:
			c.counts.Refilled++
			c.sys.Muted = true
			c.showRefill(e.Box, now)
		}
		c.sys.refresh = true
	}
	if unmute {
		c.sys.Muted = false
	}
}

// HandleButtons processes MENU and SELECT. It runs after the display stage
// of the tick; any state it changes requests a refresh for the next one.
//
// MENU click cycles the display mode. SELECT click acknowledges. SELECT
// held past the long-press threshold force-resets refilled boxes.
func (c *Controller) HandleButtons(in Input) []Event {
	var events []Event

	if c.menu.Update(in.Menu, in.Time) == ButtonReleased && !c.menu.WasLong() {
		c.sys.Mode = c.sys.Mode.Next()
		c.sys.refresh = true
		events = append(events, Event{Type: EventModeChanged, Box: -1})
	}

	switch c.sel.Update(in.Select, in.Time) {
	case ButtonReleased:
		if !c.sel.WasLong() {
			events = append(events, c.Acknowledge(in.Time))
		}
	case ButtonLongPress:
		events = append(events, c.Reset(in.Time, in.Empty)...)
	}

	stamp(events, in.Wall)
	return events
}

func stamp(events []Event, wall time.Time) {
	for i := range events {
		events[i].Timestamp = wall
	}
}

// Outputs returns the LED and buzzer levels decided by the last Update.
func (c *Controller) Outputs() Outputs {
	var out Outputs
	for i, b := range c.boxes {
		out.LEDs[i] = b.LEDOn
	}
	out.Buzzer = c.sys.BuzzerOn
	return out
}

// TakeRefresh reports whether a forced display refresh was requested since
// the last call, and clears the request.
func (c *Controller) TakeRefresh() bool {
	r := c.sys.refresh
	c.sys.refresh = false
	return r
}

// Boxes returns a copy of the per-box state.
func (c *Controller) Boxes() [NumBoxes]Box {
	return c.boxes
}

// System returns a copy of the controller-wide state.
func (c *Controller) System() System {
	return c.sys
}

// Muted reports whether the buzzer has been silenced.
func (c *Controller) Muted() bool {
	return c.sys.Muted
}

// View is the read-only projection consumed by the display presenter.
type View struct {
	Wall  time.Time
	Boxes [NumBoxes]Box
	Mode  DisplayMode
	Muted bool

	RefillOverlay bool
	RefillBox     int
	AckOverlay    bool
}

// View returns the state the display should project.
func (c *Controller) View() View {
	return View{
		Wall:          c.sys.wall,
		Boxes:         c.boxes,
		Mode:          c.sys.Mode,
		Muted:         c.sys.Muted,
		RefillOverlay: c.sys.RefillOverlay,
		RefillBox:     c.sys.RefillBox,
		AckOverlay:    c.sys.AckOverlay,
	}
}

// Counts returns a copy of the event counters.
func (c *Controller) Counts() EventCounts {
	return c.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed,
// or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}

	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.counts,
	}
}
