package logic

import (
	"testing"
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

const tick = 50 * time.Millisecond

func testSchedule() [NumBoxes]config.BoxConfig {
	return [NumBoxes]config.BoxConfig{
		{Name: "Alpha", Doses: [config.MaxDoses]int{8, 20, 0}},
		{Name: "Bravo", Doses: [config.MaxDoses]int{12, 0, 0}},
		{Name: "Charlie", Doses: [config.MaxDoses]int{9, 0, 0}},
	}
}

// harness drives a Controller with a synthetic monotonic clock and a
// synthetic wall clock that advance together.
type harness struct {
	t      *testing.T
	c      *Controller
	mono   time.Time
	wall   time.Time
	empty  [NumBoxes]bool
	menu   bool
	sel    bool
	events []Event
}

func newHarness(t *testing.T, wall time.Time) *harness {
	t.Helper()
	mono := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &harness{
		t:    t,
		c:    NewController(testSchedule(), mono),
		mono: mono,
		wall: wall,
	}
}

func (h *harness) input() Input {
	return Input{
		Time:   h.mono,
		Wall:   h.wall,
		Empty:  h.empty,
		Menu:   h.menu,
		Select: h.sel,
	}
}

// step advances both clocks by d and runs one full tick.
func (h *harness) step(d time.Duration) []Event {
	h.mono = h.mono.Add(d)
	h.wall = h.wall.Add(d)
	in := h.input()
	evs := h.c.Update(in)
	evs = append(evs, h.c.HandleButtons(in)...)
	h.events = append(h.events, evs...)
	return evs
}

// run ticks n times at the loop cadence and returns all events.
func (h *harness) run(n int) []Event {
	var all []Event
	for i := 0; i < n; i++ {
		all = append(all, h.step(tick)...)
	}
	return all
}

// click presses and releases a button long enough to be debounced.
func (h *harness) click(btn *bool) []Event {
	*btn = true
	evs := h.run(3)
	*btn = false
	return append(evs, h.run(3)...)
}

// reset drops recorded events and any pending refresh request.
func (h *harness) reset() {
	h.c.TakeRefresh()
	h.events = nil
}

func countType(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}
