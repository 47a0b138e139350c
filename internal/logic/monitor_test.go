package logic

import (
	"testing"
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
)

func TestSenseRisingEdge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBox(1, config.BoxConfig{Name: "Bravo"})
	b.JustRefilled = true

	b, events := b.Sense(true, now)
	if len(events) != 0 {
		t.Fatalf("expected no events before debounce, got %d", len(events))
	}

	b, events = b.Sense(true, now.Add(config.SensorDebounce))
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != EventBoxEmpty {
		t.Errorf("expected BOX_EMPTY, got %s", e.Type)
	}
	if e.Box != 1 || e.BoxName != "Bravo" {
		t.Errorf("unexpected box in event: %d %q", e.Box, e.BoxName)
	}
	if !b.IsEmpty || !b.EmptyAlert {
		t.Error("expected IsEmpty and EmptyAlert")
	}
	if b.JustRefilled {
		t.Error("empty edge must clear JustRefilled")
	}
}

func TestSenseFallingEdge(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBox(0, config.BoxConfig{Name: "Alpha"})
	b, _ = b.Sense(true, now)
	b, _ = b.Sense(true, now.Add(50*time.Millisecond))
	b.LEDOn = true

	refillAt := now.Add(time.Second)
	b, _ = b.Sense(false, refillAt)
	b, events := b.Sense(false, refillAt.Add(50*time.Millisecond))
	if len(events) != 1 || events[0].Type != EventBoxRefilled {
		t.Fatalf("expected one BOX_REFILLED, got %+v", events)
	}
	if b.IsEmpty || b.EmptyAlert {
		t.Error("refill must clear IsEmpty and EmptyAlert")
	}
	if !b.JustRefilled {
		t.Error("expected JustRefilled")
	}
	want := refillAt.Add(50 * time.Millisecond).Add(config.RefillDisplay)
	if !b.RefilledUntil.Equal(want) {
		t.Errorf("RefilledUntil: got %v, want %v", b.RefilledUntil, want)
	}
	if b.LEDOn {
		t.Error("refill should extinguish the LED")
	}
}

func TestSenseRefillIdempotent(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBox(0, config.BoxConfig{Name: "Alpha"})

	var all []Event
	sample := func(empty bool, n int) {
		for i := 0; i < n; i++ {
			var evs []Event
			b, evs = b.Sense(empty, now)
			all = append(all, evs...)
			now = now.Add(50 * time.Millisecond)
		}
	}

	sample(true, 10)
	sample(false, 200)

	if got := countType(all, EventBoxEmpty); got != 1 {
		t.Errorf("expected 1 BOX_EMPTY, got %d", got)
	}
	if got := countType(all, EventBoxRefilled); got != 1 {
		t.Errorf("expected exactly 1 BOX_REFILLED across stable readings, got %d", got)
	}
}

func TestSenseSingleGlitchIgnored(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBox(0, config.BoxConfig{Name: "Alpha"})

	b, _ = b.Sense(true, now)
	b, events := b.Sense(false, now.Add(50*time.Millisecond))
	if len(events) != 0 || b.IsEmpty {
		t.Fatal("one anomalous reading must not cause a transition")
	}
}

func TestForceRefilledResyncsSensor(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBox(0, config.BoxConfig{Name: "Alpha"})
	b, _ = b.Sense(true, now)
	b, _ = b.Sense(true, now.Add(50*time.Millisecond))

	b = b.forceRefilled(now.Add(time.Second))
	if b.IsEmpty || b.EmptyAlert || !b.JustRefilled {
		t.Fatal("forceRefilled should clear the alert and mark refilled")
	}

	// Sensor reads full: no second refill event
	for i := 0; i < 5; i++ {
		var evs []Event
		b, evs = b.Sense(false, now.Add(time.Second+time.Duration(i)*50*time.Millisecond))
		if len(evs) != 0 {
			t.Fatalf("unexpected event after forced refill: %+v", evs)
		}
	}
}
