package logic

import (
	"testing"
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

func TestMinutesUntil(t *testing.T) {
	tests := []struct {
		dose, hour, minute int
		want               int
	}{
		{8, 7, 30, 30},
		{8, 7, 59, 1},
		{8, 8, 0, 0},
		{8, 8, 1, 1439},
		{1, 23, 45, 75},
		{20, 8, 0, 720},
		{23, 0, 0, 1380},
	}
	for _, tt := range tests {
		if got := MinutesUntil(tt.dose, tt.hour, tt.minute); got != tt.want {
			t.Errorf("MinutesUntil(%d, %d, %d) = %d, want %d", tt.dose, tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestDueFiresOncePerSlotPerDay(t *testing.T) {
	h := newHarness(t, at(0, 0).Add(-time.Minute))

	type key struct{ box, hour int }
	fired := map[key]int{}
	var prev [NumBoxes]bool

	for i := 0; i < 24*60; i++ {
		for _, e := range h.step(time.Minute) {
			if e.Type != EventDoseDue {
				continue
			}
			fired[key{e.Box, e.Hour}]++
			if e.Timestamp.Hour() != e.Hour || e.Timestamp.Minute() >= config.ScheduleWindowMinutes {
				t.Errorf("box %d fired outside its window at %s", e.Box, e.Timestamp.Format("15:04"))
			}
		}
		for b, box := range h.c.Boxes() {
			if box.ScheduleAlert && !prev[b] {
				if h.wall.Minute() >= config.ScheduleWindowMinutes {
					t.Errorf("box %d alert rose outside a window at %s", b, h.wall.Format("15:04"))
				}
			}
			prev[b] = box.ScheduleAlert
		}
	}

	want := []key{{0, 8}, {0, 20}, {1, 12}, {2, 9}}
	for _, k := range want {
		if fired[k] != 1 {
			t.Errorf("box %d hour %d: fired %d times, want 1", k.box, k.hour, fired[k])
		}
	}
	if len(fired) != len(want) {
		t.Errorf("unexpected slots fired: %v", fired)
	}
}

func TestDueWindowSweepAcrossTwoDays(t *testing.T) {
	h := newHarness(t, at(0, 0).Add(-time.Minute))

	var due, resets int
	for i := 0; i < 2*24*60; i++ {
		evs := h.step(time.Minute)
		due += countType(evs, EventDoseDue)
		resets += countType(evs, EventDailyReset)
		// Acknowledge every alert so each new one is a fresh rise.
		if countType(evs, EventDoseDue) > 0 {
			h.c.Acknowledge(h.mono)
		}
	}
	if due != 8 {
		t.Errorf("expected 8 due events over two days, got %d", due)
	}
	if resets != 1 {
		t.Errorf("expected 1 daily reset, got %d", resets)
	}
}

func TestReminderNeverOverlapsTriggeredSlot(t *testing.T) {
	h := newHarness(t, at(0, 0).Add(-time.Minute))

	for i := 0; i < 24*60; i++ {
		h.step(time.Minute)
		for _, b := range h.c.Boxes() {
			if !b.Reminder {
				continue
			}
			for slot, dose := range b.Doses {
				if dose == b.NextDoseHour && b.TriggeredToday[slot] {
					t.Fatalf("%s at %s: reminder for already triggered %02d:00",
						b.Name, h.wall.Format("15:04"), dose)
				}
			}
		}
	}
}

func TestReminderWindow(t *testing.T) {
	tests := []struct {
		name     string
		wall     time.Time
		box      int
		want     bool
		wantHour int
	}{
		{"31 minutes before", at(7, 29), 0, false, 0},
		{"30 minutes before", at(7, 30), 0, true, 8},
		{"1 minute before", at(7, 59), 0, true, 8},
		{"at dose time", at(8, 0), 0, false, 0},
		{"second slot", at(19, 45), 0, true, 20},
		{"other box", at(11, 40), 1, true, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.wall.Add(-tick))
			h.step(tick)
			b := h.c.Boxes()[tt.box]
			if b.Reminder != tt.want {
				t.Errorf("Reminder: got %v, want %v", b.Reminder, tt.want)
			}
			if b.NextDoseHour != tt.wantHour {
				t.Errorf("NextDoseHour: got %d, want %d", b.NextDoseHour, tt.wantHour)
			}
		})
	}
}

func TestReminderIsRecomputedNotSticky(t *testing.T) {
	h := newHarness(t, at(7, 45).Add(-tick))
	h.step(tick)
	if !h.c.Boxes()[0].Reminder {
		t.Fatal("expected reminder at 07:45")
	}

	h.c.Acknowledge(h.mono)
	if h.c.Boxes()[0].Reminder {
		t.Fatal("acknowledge should clear the reminder")
	}

	// Same minute: schedule is not re-evaluated
	h.step(tick)
	if h.c.Boxes()[0].Reminder {
		t.Error("reminder should stay clear within the same minute")
	}

	// Next minute the reminder is recomputed from scratch
	h.step(time.Minute)
	if !h.c.Boxes()[0].Reminder {
		t.Error("reminder should return on the next evaluation")
	}
}

func TestMinuteGate(t *testing.T) {
	h := newHarness(t, at(8, 0).Add(-tick))

	evs := h.run(100) // 5 s inside 08:00
	if got := countType(evs, EventDoseDue); got != 1 {
		t.Fatalf("expected 1 due event, got %d", got)
	}

	h.c.Acknowledge(h.mono)
	evs = h.run(int(3 * time.Minute / tick))
	if got := countType(evs, EventDoseDue); got != 0 {
		t.Errorf("triggered slot must not refire inside its window, got %d", got)
	}
	if h.c.Boxes()[0].ScheduleAlert {
		t.Error("acknowledged alert came back")
	}
}

func TestBootInsideWindowFires(t *testing.T) {
	h := newHarness(t, at(12, 4).Add(-tick))
	evs := h.step(tick)
	if got := countType(evs, EventDoseDue); got != 1 {
		t.Fatalf("expected due at 12:04, got %d", got)
	}
	if !h.c.Boxes()[1].ScheduleAlert {
		t.Error("expected Bravo schedule alert")
	}
}

func TestBootAfterWindowDoesNotFire(t *testing.T) {
	h := newHarness(t, at(12, 5).Add(-tick))
	if got := countType(h.step(tick), EventDoseDue); got != 0 {
		t.Fatalf("12:05 is outside the window, got %d due events", got)
	}
}

func TestDailyReset(t *testing.T) {
	h := newHarness(t, at(23, 59).Add(-tick))
	h.step(tick)

	h.c.boxes[0].TriggeredToday[0] = true
	h.c.sys.Muted = true

	evs := h.step(time.Minute) // 00:00 next day
	if got := countType(evs, EventDailyReset); got != 1 {
		t.Fatalf("expected DAILY_RESET, got %d", got)
	}
	for i, b := range h.c.Boxes() {
		if b.TriggeredToday != [config.MaxDoses]bool{} {
			t.Errorf("box %d: triggered flags not cleared: %v", i, b.TriggeredToday)
		}
	}
	if h.c.Muted() {
		t.Error("daily reset should unmute")
	}

	evs = h.step(8 * time.Hour) // 08:00 next day
	if got := countType(evs, EventDoseDue); got != 1 {
		t.Fatalf("08:00 slot should fire again on the new day, got %d", got)
	}
	if h.wall.Day() != 11 {
		t.Fatalf("test clock expected on day 11, got %d", h.wall.Day())
	}
}

func TestNextDose(t *testing.T) {
	b := NewBox(0, config.BoxConfig{Name: "Alpha", Doses: [config.MaxDoses]int{8, 20, 0}})

	hour, mins, ok := NextDose(b, at(9, 15))
	if !ok || hour != 20 || mins != 645 {
		t.Errorf("got (%d, %d, %v), want (20, 645, true)", hour, mins, ok)
	}

	b.TriggeredToday = [config.MaxDoses]bool{true, true}
	hour, mins, ok = NextDose(b, at(21, 0))
	if !ok || hour != 8 || mins != 660 {
		t.Errorf("all fired: got (%d, %d, %v), want (8, 660, true)", hour, mins, ok)
	}

	empty := NewBox(1, config.BoxConfig{Name: "None"})
	if _, _, ok := NextDose(empty, at(9, 0)); ok {
		t.Error("box without doses should report no next dose")
	}
}
