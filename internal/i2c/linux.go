//go:build linux

package i2c

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Open initialises the host drivers and opens bus n (/dev/i2c-<n>).
func Open(n int) (Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}
	bus, err := i2creg.Open(strconv.Itoa(n))
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", n, err)
	}
	return bus, nil
}
