// Package rtc provides the wall-clock source for the dose schedule.
// The real implementation uses a DS3231 on the I2C bus.
// The system implementation uses the host clock; the fake is for tests.
package rtc

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockUnavailable means the clock could not be reached at startup.
// It is fatal: the control loop must not run without a clock.
var ErrClockUnavailable = errors.New("rtc: clock unavailable")

// Clock reads and sets wall-clock time.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() (time.Time, error)

	// LostPower reports whether the clock's backup supply failed, leaving
	// the stored time invalid.
	LostPower() bool

	// Adjust sets the clock.
	Adjust(t time.Time) error
}

// Seed reseeds a clock that lost power. It returns true if the clock was
// adjusted. A clock that kept its time is left alone.
func Seed(c Clock, build time.Time, ok bool) (bool, error) {
	if !c.LostPower() {
		return false, nil
	}
	if !ok {
		return false, errors.New("rtc: lost power and no build time to seed from")
	}
	if err := c.Adjust(build); err != nil {
		return false, fmt.Errorf("seed clock: %w", err)
	}
	return true, nil
}
