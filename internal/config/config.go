// Package config holds the compile-time dose table and timing constants.
// The schedule is deliberately not loaded at runtime; Validate is run once
// at startup and a bad table is a fatal configuration error.
package config

import (
	"errors"
	"fmt"
	"time"
)

// NumBoxes is the fixed number of pill boxes.
const NumBoxes = 3

// MaxDoses is the number of dose slots per box.
const MaxDoses = 3

// Timing windows. Doses are whole hours; the minute is implicitly 0.
const (
	ScheduleWindowMinutes = 5
	ReminderWindowMinutes = 30

	SensorDebounce     = 50 * time.Millisecond
	ButtonDebounce     = 50 * time.Millisecond
	LongPress          = 1 * time.Second
	RefillDisplay      = 3 * time.Second
	AckMessageDuration = 2 * time.Second
	FastBlink          = 500 * time.Millisecond
	SlowBlink          = 1000 * time.Millisecond
	BuzzerHalfPeriod   = 500 * time.Millisecond
	DisplayRefresh     = 1 * time.Second
	ReminderAlternate  = 5 * time.Second
	BannerDuration     = 2 * time.Second
)

// BoxConfig describes one pill box. A dose hour of 0 marks an unused slot.
type BoxConfig struct {
	Name  string
	Doses [MaxDoses]int
}

// DefaultBoxes is the dose table flashed with the firmware.
var DefaultBoxes = [NumBoxes]BoxConfig{
	{Name: "Vitamin D", Doses: [MaxDoses]int{8, 0, 0}},
	{Name: "Blood Pressure", Doses: [MaxDoses]int{8, 20, 0}},
	{Name: "Antibiotic", Doses: [MaxDoses]int{7, 15, 23}},
}

// ErrInvalidSchedule is returned by Validate for an unusable dose table.
var ErrInvalidSchedule = errors.New("invalid schedule")

// Validate rejects empty names, hours outside 0-23 and a box listing the
// same hour twice.
func Validate(boxes []BoxConfig) error {
	if len(boxes) != NumBoxes {
		return fmt.Errorf("%w: want %d boxes, got %d", ErrInvalidSchedule, NumBoxes, len(boxes))
	}
	for i, b := range boxes {
		if b.Name == "" {
			return fmt.Errorf("%w: box %d has no name", ErrInvalidSchedule, i+1)
		}
		for slot, h := range b.Doses {
			if h < 0 || h > 23 {
				return fmt.Errorf("%w: box %q slot %d hour %d out of range 0-23", ErrInvalidSchedule, b.Name, slot+1, h)
			}
			for prev := 0; prev < slot; prev++ {
				if h != 0 && b.Doses[prev] == h {
					return fmt.Errorf("%w: box %q lists hour %d twice", ErrInvalidSchedule, b.Name, h)
				}
			}
		}
	}
	return nil
}
