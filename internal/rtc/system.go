package rtc

import (
	"errors"
	"time"
)

// System reads wall time from the host clock, for machines kept in sync
// by NTP or for running without an RTC module attached.
type System struct{}

// Now returns the host's local time with its zone stripped, matching the
// zoneless wall time an RTC chip reports.
func (System) Now() (time.Time, error) {
	t := time.Now()
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
}

// LostPower is always false; the host manages its own clock.
func (System) LostPower() bool { return false }

// Adjust is not supported for the host clock.
func (System) Adjust(time.Time) error {
	return errors.New("rtc: system clock cannot be adjusted")
}
