package rtc

import (
	"errors"
	"testing"
	"time"

	"github.com/sweeney/pill-reminder/internal/i2c"
	"tinygo.org/x/drivers/ds3231"
)

const (
	regStatus  = 0x0F
	regControl = 0x0E
	osf        = 1 << 7
	eosc       = 1 << 7
)

func TestSeedLeavesValidClockAlone(t *testing.T) {
	c := NewFake(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	build := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seeded, err := Seed(c, build, true)
	if err != nil {
		t.Fatal(err)
	}
	if seeded || len(c.Adjusted) != 0 {
		t.Error("clock with valid time should not be adjusted")
	}
}

func TestSeedAfterPowerLoss(t *testing.T) {
	c := NewFake(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	c.Lost = true
	build := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	seeded, err := Seed(c, build, true)
	if err != nil {
		t.Fatal(err)
	}
	if !seeded {
		t.Fatal("expected reseed")
	}
	if got, _ := c.Now(); !got.Equal(build) {
		t.Errorf("clock reads %v, want %v", got, build)
	}
	if c.LostPower() {
		t.Error("power-loss flag should clear after adjust")
	}
}

func TestSeedWithoutBuildTime(t *testing.T) {
	c := NewFake(time.Time{})
	c.Lost = true
	if _, err := Seed(c, time.Time{}, false); err == nil {
		t.Error("expected error when there is nothing to seed from")
	}
}

func TestDS3231Unavailable(t *testing.T) {
	bus := i2c.NewFake() // nothing answers
	_, err := NewDS3231(bus)
	if !errors.Is(err, ErrClockUnavailable) {
		t.Errorf("got %v, want ErrClockUnavailable", err)
	}
}

func TestDS3231RoundTrip(t *testing.T) {
	bus := i2c.NewFake(ds3231.Address)
	bus.Regs[ds3231.Address][regStatus] = osf // fresh battery: oscillator stopped

	d, err := NewDS3231(bus)
	if err != nil {
		t.Fatal(err)
	}
	if !d.LostPower() {
		t.Fatal("OSF set: expected LostPower")
	}

	want := time.Date(2026, 3, 10, 19, 59, 30, 0, time.UTC)
	if err := d.Adjust(want); err != nil {
		t.Fatal(err)
	}
	if d.LostPower() {
		t.Error("Adjust should clear OSF")
	}
	got, err := d.Now()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDS3231StartsStoppedOscillator(t *testing.T) {
	bus := i2c.NewFake(ds3231.Address)
	bus.Regs[ds3231.Address][regControl] = eosc

	if _, err := NewDS3231(bus); err != nil {
		t.Fatal(err)
	}
	if bus.Regs[ds3231.Address][regControl]&eosc != 0 {
		t.Error("oscillator should be enabled")
	}
}
