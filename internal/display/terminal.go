package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Terminal emulates the character display on a text terminal. Each Print
// updates an in-memory grid; the grid is drawn as a framed panel when the
// second row has been written.
type Terminal struct {
	w      io.Writer
	grid   [Rows][Columns]byte
	col    int
	row    int
	frame  *color.Color
	text   *color.Color
	drawn  string
	redraw bool
}

// NewTerminal creates a terminal display writing to w.
func NewTerminal(w io.Writer) *Terminal {
	t := &Terminal{
		w:     w,
		frame: color.New(color.FgHiBlack),
		text:  color.New(color.FgHiGreen, color.Bold),
	}
	t.blank()
	return t
}

func (t *Terminal) blank() {
	for r := range t.grid {
		for c := range t.grid[r] {
			t.grid[r][c] = ' '
		}
	}
}

// Clear blanks the grid.
func (t *Terminal) Clear() {
	t.blank()
	t.col, t.row = 0, 0
	t.redraw = true
}

// SetCursor moves the cursor; out-of-range positions are clamped.
func (t *Terminal) SetCursor(col, row uint8) {
	t.col = min(int(col), Columns-1)
	t.row = min(int(row), Rows-1)
}

// Print writes text at the cursor. Text past the last column is dropped.
func (t *Terminal) Print(text string) {
	for i := 0; i < len(text) && t.col < Columns; i++ {
		t.grid[t.row][t.col] = text[i]
		t.col++
	}
	t.redraw = true
	if t.row == Rows-1 {
		t.flush()
	}
}

// Lines returns the current grid contents.
func (t *Terminal) Lines() [Rows]string {
	var out [Rows]string
	for r := range t.grid {
		out[r] = string(t.grid[r][:])
	}
	return out
}

func (t *Terminal) flush() {
	if !t.redraw {
		return
	}
	t.redraw = false

	lines := t.Lines()
	key := strings.Join(lines[:], "\n")
	if key == t.drawn {
		return
	}
	t.drawn = key

	border := t.frame.Sprint("+" + strings.Repeat("-", Columns) + "+")
	fmt.Fprintln(t.w, border)
	for _, l := range lines {
		fmt.Fprintf(t.w, "%s%s%s\n", t.frame.Sprint("|"), t.text.Sprint(l), t.frame.Sprint("|"))
	}
	fmt.Fprintln(t.w, border)
}
