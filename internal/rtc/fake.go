package rtc

import "time"

// Fake is a test double with a settable time.
type Fake struct {
	// T is returned by Now.
	T time.Time

	// Lost is returned by LostPower until Adjust is called.
	Lost bool

	// NowError, if set, will be returned by Now().
	NowError error

	// Adjusted records every Adjust call.
	Adjusted []time.Time
}

// NewFake creates a Fake reading t.
func NewFake(t time.Time) *Fake {
	return &Fake{T: t}
}

// Now returns T.
func (f *Fake) Now() (time.Time, error) {
	if f.NowError != nil {
		return time.Time{}, f.NowError
	}
	return f.T, nil
}

// LostPower returns Lost.
func (f *Fake) LostPower() bool { return f.Lost }

// Adjust sets T and clears Lost.
func (f *Fake) Adjust(t time.Time) error {
	f.Adjusted = append(f.Adjusted, t)
	f.T = t
	f.Lost = false
	return nil
}

// Advance moves the clock forward.
func (f *Fake) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}
