//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealBoard drives the pill box from actual hardware using Linux GPIO
// character device.
type RealBoard struct {
	chip    *gpiocdev.Chip
	sensors []*gpiocdev.Line
	leds    []*gpiocdev.Line
	buzzer  *gpiocdev.Line
	menu    *gpiocdev.Line
	sel     *gpiocdev.Line
	last    Outputs
	written bool
}

// NewRealBoard requests every line on gpiochip0.
func NewRealBoard(pins Pins) (*RealBoard, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	b := &RealBoard{chip: chip}

	fail := func(err error) (*RealBoard, error) {
		b.Close()
		return nil, err
	}

	// Sensor modules drive the line high when nothing is in front of them.
	for i, pin := range pins.Sensors {
		l, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
		if err != nil {
			return fail(fmt.Errorf("request sensor %d pin %d: %w", i+1, pin, err))
		}
		b.sensors = append(b.sensors, l)
	}
	for i, pin := range pins.LEDs {
		l, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			return fail(fmt.Errorf("request LED %d pin %d: %w", i+1, pin, err))
		}
		b.leds = append(b.leds, l)
	}
	if b.buzzer, err = chip.RequestLine(pins.Buzzer, gpiocdev.AsOutput(0)); err != nil {
		return fail(fmt.Errorf("request buzzer pin %d: %w", pins.Buzzer, err))
	}

	// Buttons short to ground.
	if b.menu, err = chip.RequestLine(pins.Menu, gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
		return fail(fmt.Errorf("request MENU pin %d: %w", pins.Menu, err))
	}
	if b.sel, err = chip.RequestLine(pins.Select, gpiocdev.AsInput, gpiocdev.WithPullUp); err != nil {
		return fail(fmt.Errorf("request SELECT pin %d: %w", pins.Select, err))
	}
	return b, nil
}

// Read returns the logical state of every input.
// Sensors: raw high = empty. Buttons: raw low = pressed.
func (b *RealBoard) Read() (Sample, error) {
	var s Sample
	for i, l := range b.sensors {
		v, err := l.Value()
		if err != nil {
			return Sample{}, fmt.Errorf("read sensor %d: %w", i+1, err)
		}
		s.Empty[i] = v == 1
	}
	menu, err := b.menu.Value()
	if err != nil {
		return Sample{}, fmt.Errorf("read MENU: %w", err)
	}
	sel, err := b.sel.Value()
	if err != nil {
		return Sample{}, fmt.Errorf("read SELECT: %w", err)
	}
	s.Menu = menu == 0
	s.Select = sel == 0
	return s, nil
}

// Write drives the LEDs and buzzer. Lines are only touched when the
// requested state differs from the last one written.
func (b *RealBoard) Write(o Outputs) error {
	for i, l := range b.leds {
		if b.written && b.last.LEDs[i] == o.LEDs[i] {
			continue
		}
		if err := l.SetValue(level(o.LEDs[i])); err != nil {
			return fmt.Errorf("write LED %d: %w", i+1, err)
		}
	}
	if !b.written || b.last.Buzzer != o.Buzzer {
		if err := b.buzzer.SetValue(level(o.Buzzer)); err != nil {
			return fmt.Errorf("write buzzer: %w", err)
		}
	}
	b.last = o
	b.written = true
	return nil
}

// Close releases GPIO resources.
// Outputs are driven low and every line is returned to input with
// pull-down (matching Pi boot defaults) before closing.
func (b *RealBoard) Close() error {
	var errs []error

	release := func(name string, l *gpiocdev.Line) {
		if l == nil {
			return
		}
		if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s: %w", name, err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}

	for i, l := range b.leds {
		l.SetValue(0)
		release(fmt.Sprintf("LED %d", i+1), l)
	}
	if b.buzzer != nil {
		b.buzzer.SetValue(0)
	}
	release("buzzer", b.buzzer)
	for i, l := range b.sensors {
		release(fmt.Sprintf("sensor %d", i+1), l)
	}
	release("MENU", b.menu)
	release("SELECT", b.sel)

	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}
