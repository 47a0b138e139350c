// Package display renders controller state on a 16x2 character display.
// The presenter is a pure projection of logic.View; backends only know how
// to clear, position the cursor and print.
package display

// Geometry of the character display.
const (
	Columns = 16
	Rows    = 2
)

// Display is a character display addressed by column and row.
type Display interface {
	Clear()
	SetCursor(col, row uint8)
	Print(text string)
}

// Frame is the full content of the display, one string per row.
type Frame [Rows]string

// Show writes a frame to the display. Rows longer than Columns are truncated.
func Show(d Display, f Frame) {
	d.Clear()
	for row, line := range f {
		d.SetCursor(0, uint8(row))
		d.Print(truncate(line, Columns))
	}
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// fit joins prefix, name and suffix, shortening only the name so the whole
// line stays within Columns.
func fit(prefix, name, suffix string) string {
	budget := Columns - len([]rune(prefix)) - len([]rune(suffix))
	return truncate(prefix+truncate(name, budget)+suffix, Columns)
}
