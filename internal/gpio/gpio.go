// Package gpio provides the pill box's digital I/O with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/pill-reminder/internal/config"

// Sample is one reading of every input, already in logical form.
type Sample struct {
	Empty  [config.NumBoxes]bool // true = box reads empty
	Menu   bool                  // true = pressed
	Select bool                  // true = pressed
}

// Outputs is the logical state of every actuator.
type Outputs struct {
	LEDs   [config.NumBoxes]bool
	Buzzer bool
}

// Board reads the sensors and buttons and drives the LEDs and buzzer.
type Board interface {
	// Read returns the logical state of every input.
	Read() (Sample, error)

	// Write drives the LEDs and buzzer.
	Write(Outputs) error

	// Close releases GPIO resources, leaving outputs off.
	Close() error
}

// Pins maps the board's signals to BCM line offsets.
type Pins struct {
	Sensors [config.NumBoxes]int
	LEDs    [config.NumBoxes]int
	Buzzer  int
	Menu    int
	Select  int
}

// DefaultPins is the reference wiring (BCM numbering).
var DefaultPins = Pins{
	Sensors: [config.NumBoxes]int{17, 27, 22},
	LEDs:    [config.NumBoxes]int{5, 6, 13},
	Buzzer:  19,
	Menu:    23,
	Select:  24,
}
