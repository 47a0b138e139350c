// Package i2c provides the I2C bus shared by the LCD and the real-time
// clock. The real implementation opens the bus through periph.io.
// The fake implementation is a register file for testing without hardware.
//
// Both satisfy tinygo.org/x/drivers.I2C so device drivers can be used as-is.
package i2c

// DefaultBus is the Raspberry Pi header bus (/dev/i2c-1).
const DefaultBus = 1

// Bus is an open I2C bus.
type Bus interface {
	// Tx writes w to the device at addr, then reads len(r) bytes into r,
	// as one combined transaction.
	Tx(addr uint16, w, r []byte) error
	Close() error
}
