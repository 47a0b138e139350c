package display

import (
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

// DefaultLCDAddress is the usual PCF8574 backpack address. Some backpacks
// use 0x3F instead.
const DefaultLCDAddress = 0x27

// LCD drives an HD44780 character display through an I2C backpack.
type LCD struct {
	dev hd44780i2c.Device
}

// NewLCD configures a 16x2 display on the given bus.
func NewLCD(bus drivers.I2C, addr uint8) (*LCD, error) {
	dev := hd44780i2c.New(bus, addr)
	if err := dev.Configure(hd44780i2c.Config{Width: Columns, Height: Rows}); err != nil {
		return nil, fmt.Errorf("configure lcd at 0x%02x: %w", addr, err)
	}
	return &LCD{dev: dev}, nil
}

// Clear blanks the display and homes the cursor.
func (l *LCD) Clear() {
	l.dev.ClearDisplay()
}

// SetCursor moves the cursor to col, row.
func (l *LCD) SetCursor(col, row uint8) {
	l.dev.SetCursor(col, row)
}

// Print writes text at the cursor.
func (l *LCD) Print(text string) {
	l.dev.Print([]byte(text))
}

// Close switches the backlight off.
func (l *LCD) Close() error {
	l.dev.ClearDisplay()
	l.dev.BacklightOn(false)
	return nil
}
