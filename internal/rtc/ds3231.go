package rtc

import (
	"fmt"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ds3231"
)

// DS3231 reads wall time from a DS3231 module. The chip keeps local wall
// time with no zone, so readings carry the UTC location and only their
// calendar fields are meaningful.
type DS3231 struct {
	dev ds3231.Device
}

// NewDS3231 probes the chip on the given bus. It returns ErrClockUnavailable
// if the chip does not answer, and restarts the oscillator if it is stopped.
func NewDS3231(bus drivers.I2C) (*DS3231, error) {
	dev := ds3231.New(bus)
	dev.Configure()
	if _, err := dev.ReadTime(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClockUnavailable, err)
	}
	if !dev.IsRunning() {
		if err := dev.SetRunning(true); err != nil {
			return nil, fmt.Errorf("start oscillator: %w", err)
		}
	}
	return &DS3231{dev: dev}, nil
}

// Now returns the chip's current time.
func (d *DS3231) Now() (time.Time, error) {
	t, err := d.dev.ReadTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read ds3231: %w", err)
	}
	return t, nil
}

// LostPower reports whether the oscillator-stop flag is set.
func (d *DS3231) LostPower() bool {
	return !d.dev.IsTimeValid()
}

// Adjust writes t to the chip and clears the oscillator-stop flag.
func (d *DS3231) Adjust(t time.Time) error {
	if err := d.dev.SetTime(t); err != nil {
		return fmt.Errorf("set ds3231: %w", err)
	}
	return nil
}
