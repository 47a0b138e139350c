package gpio

import "errors"

// FakeBoard is a test double that returns scripted inputs and records
// every output written.
type FakeBoard struct {
	// Samples contains scripted readings to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Writes records every Write call in order.
	Writes []Outputs

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeBoard creates a FakeBoard with the given samples.
func NewFakeBoard(samples []Sample) *FakeBoard {
	return &FakeBoard{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeBoard) Read() (Sample, error) {
	if f.ReadError != nil {
		return Sample{}, f.ReadError
	}

	if len(f.Samples) == 0 {
		return Sample{}, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Write records o.
func (f *FakeBoard) Write(o Outputs) error {
	f.Writes = append(f.Writes, o)
	return nil
}

// Last returns the most recent outputs written, or all-off if none.
func (f *FakeBoard) Last() Outputs {
	if len(f.Writes) == 0 {
		return Outputs{}
	}
	return f.Writes[len(f.Writes)-1]
}

// Close marks the board as closed and turns the outputs off.
func (f *FakeBoard) Close() error {
	f.Closed = true
	f.Writes = append(f.Writes, Outputs{})
	return nil
}
