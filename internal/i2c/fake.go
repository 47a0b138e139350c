package i2c

import "fmt"

// Fake is a test double modelling register-addressed devices: the first
// written byte selects a register, further bytes are stored from there,
// and reads return consecutive registers.
type Fake struct {
	// Regs holds the register file for each responding address.
	Regs map[uint16]*[256]byte

	// TxError, if set, is returned by every transaction.
	TxError error

	// Txs counts transactions.
	Txs int

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake with devices answering at the given addresses.
func NewFake(addrs ...uint16) *Fake {
	f := &Fake{Regs: make(map[uint16]*[256]byte)}
	for _, a := range addrs {
		f.Regs[a] = new([256]byte)
	}
	return f
}

// Tx implements drivers.I2C.
func (f *Fake) Tx(addr uint16, w, r []byte) error {
	f.Txs++
	if f.TxError != nil {
		return f.TxError
	}
	regs, ok := f.Regs[addr]
	if !ok {
		return fmt.Errorf("i2c: no device at 0x%02x", addr)
	}
	if len(w) == 0 {
		return nil
	}
	reg := w[0]
	for i, b := range w[1:] {
		regs[reg+uint8(i)] = b
	}
	for i := range r {
		r[i] = regs[reg+uint8(i)]
	}
	return nil
}

// Close records the call.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
