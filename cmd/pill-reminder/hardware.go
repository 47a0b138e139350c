package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/pill-reminder/internal/buildinfo"
	"github.com/sweeney/pill-reminder/internal/config"
	"github.com/sweeney/pill-reminder/internal/display"
	"github.com/sweeney/pill-reminder/internal/gpio"
	"github.com/sweeney/pill-reminder/internal/i2c"
	"github.com/sweeney/pill-reminder/internal/rtc"
	"github.com/sweeney/pill-reminder/internal/status"
)

// options holds the hardware and daemon flags shared by the subcommands.
type options struct {
	poll      time.Duration
	heartbeat time.Duration
	broker    string

	board   string // "gpio" or "sim"
	display string // "lcd" or "terminal"
	rtc     string // "ds3231" or "system"

	i2cBus  int
	lcdAddr uint8

	sensorPins []int
	ledPins    []int
	buzzerPin  int
	menuPin    int
	selectPin  int
}

func addHardwareFlags(cmd *cobra.Command, o *options) {
	f := cmd.Flags()
	f.StringVar(&o.board, "board", "gpio", `Input/output backend: "gpio" or "sim" (all boxes full, no buttons)`)
	f.StringVar(&o.display, "display", "lcd", `Display backend: "lcd" or "terminal"`)
	f.StringVar(&o.rtc, "rtc", "ds3231", `Clock backend: "ds3231" or "system"`)
	f.IntVar(&o.i2cBus, "i2c-bus", i2c.DefaultBus, "I2C bus number (/dev/i2c-N)")
	f.Uint8Var(&o.lcdAddr, "lcd-addr", display.DefaultLCDAddress, "LCD backpack I2C address")
	f.IntSliceVar(&o.sensorPins, "sensor-pins", gpio.DefaultPins.Sensors[:], "BCM pins for the box sensors")
	f.IntSliceVar(&o.ledPins, "led-pins", gpio.DefaultPins.LEDs[:], "BCM pins for the box LEDs")
	f.IntVar(&o.buzzerPin, "buzzer-pin", gpio.DefaultPins.Buzzer, "BCM pin for the buzzer")
	f.IntVar(&o.menuPin, "menu-pin", gpio.DefaultPins.Menu, "BCM pin for the MENU button")
	f.IntVar(&o.selectPin, "select-pin", gpio.DefaultPins.Select, "BCM pin for the SELECT button")
}

func (o options) pins() (gpio.Pins, error) {
	if len(o.sensorPins) != config.NumBoxes || len(o.ledPins) != config.NumBoxes {
		return gpio.Pins{}, fmt.Errorf("need %d sensor and LED pins, got %d and %d",
			config.NumBoxes, len(o.sensorPins), len(o.ledPins))
	}
	p := gpio.Pins{Buzzer: o.buzzerPin, Menu: o.menuPin, Select: o.selectPin}
	copy(p.Sensors[:], o.sensorPins)
	copy(p.LEDs[:], o.ledPins)
	return p, nil
}

func (o options) statusConfig() status.Config {
	return status.Config{
		PollMs:      o.poll.Milliseconds(),
		HeartbeatMs: o.heartbeat.Milliseconds(),
		Broker:      o.broker,
		Display:     o.display,
		RTC:         o.rtc,
		Version:     buildinfo.Short(),
	}
}

// hardware is the set of opened devices. Fields may be nil when opening
// stopped part way.
type hardware struct {
	board   gpio.Board
	clock   rtc.Clock
	disp    display.Display
	closers []closer
}

type closer struct {
	close   func() error
	display bool // blanks the panel
}

// openHardware opens the display first so later failures can be shown on
// it, then the clock, then the GPIO board. The returned hardware is never
// nil; on error hand it to failHardware, otherwise Close it.
func openHardware(o options) (*hardware, error) {
	h := &hardware{}

	var bus i2c.Bus
	if o.display == "lcd" || o.rtc == "ds3231" {
		b, err := i2c.Open(o.i2cBus)
		if err != nil {
			return h, fmt.Errorf("init i2c: %w", err)
		}
		bus = b
		h.closers = append(h.closers, closer{close: bus.Close})
	}

	switch o.display {
	case "lcd":
		lcd, err := display.NewLCD(bus, o.lcdAddr)
		if err != nil {
			return h, fmt.Errorf("init lcd: %w", err)
		}
		h.disp = lcd
		h.closers = append(h.closers, closer{close: lcd.Close, display: true})
	case "terminal":
		h.disp = display.NewTerminal(os.Stdout)
	default:
		return h, fmt.Errorf("unknown display %q", o.display)
	}

	switch o.rtc {
	case "ds3231":
		clk, err := rtc.NewDS3231(bus)
		if err != nil {
			return h, fmt.Errorf("init rtc: %w", err)
		}
		h.clock = clk
	case "system":
		h.clock = rtc.System{}
	default:
		return h, fmt.Errorf("unknown rtc %q", o.rtc)
	}

	switch o.board {
	case "gpio":
		pins, err := o.pins()
		if err != nil {
			return h, err
		}
		b, err := gpio.NewRealBoard(pins)
		if err != nil {
			return h, fmt.Errorf("init gpio: %w", err)
		}
		h.board = b
	case "sim":
		h.board = gpio.NewFakeBoard([]gpio.Sample{{}})
	default:
		return h, fmt.Errorf("unknown board %q", o.board)
	}
	h.closers = append(h.closers, closer{close: h.board.Close})

	return h, nil
}

// Close releases devices in reverse order of opening.
func (h *hardware) Close() {
	h.release(true)
}

// Release is Close without the display teardown, so the panel keeps
// showing its last frame after the process exits.
func (h *hardware) Release() {
	h.release(false)
}

func (h *hardware) release(all bool) {
	for i := len(h.closers) - 1; i >= 0; i-- {
		c := h.closers[i]
		if c.display && !all {
			continue
		}
		if err := c.close(); err != nil {
			log.Printf("close: %v", err)
		}
	}
	h.closers = nil
}

// failHardware handles an openHardware error. A missing clock is reported
// on the display, which stays lit while everything else is released.
func failHardware(hw *hardware, err error) error {
	if errors.Is(err, rtc.ErrClockUnavailable) && hw.disp != nil {
		display.Show(hw.disp, display.Frame{"RTC ERROR", "Check wiring"})
		hw.Release()
		return err
	}
	hw.Close()
	return err
}
