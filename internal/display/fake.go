package display

// Fake is a Display test double that keeps the visible grid and counts writes.
type Fake struct {
	grid   [Rows][]byte
	col    int
	row    int
	Clears int
	Prints int
}

// NewFake creates an empty fake display.
func NewFake() *Fake {
	return &Fake{}
}

// Clear blanks the grid.
func (f *Fake) Clear() {
	f.grid = [Rows][]byte{}
	f.col, f.row = 0, 0
	f.Clears++
}

// SetCursor moves the cursor.
func (f *Fake) SetCursor(col, row uint8) {
	f.col, f.row = int(col), int(row)
}

// Print records text at the cursor.
func (f *Fake) Print(text string) {
	if f.row < 0 || f.row >= Rows {
		return
	}
	line := f.grid[f.row]
	for len(line) < f.col {
		line = append(line, ' ')
	}
	line = append(line[:f.col], text...)
	f.grid[f.row] = line
	f.col += len(text)
	f.Prints++
}

// Line returns the text shown on row.
func (f *Fake) Line(row int) string {
	return string(f.grid[row])
}

// Frame returns both rows.
func (f *Fake) Frame() Frame {
	return Frame{f.Line(0), f.Line(1)}
}
