package termcolor

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// cellWidth measures cells with East Asian ambiguous runes as narrow so column
// layout does not depend on the user's locale.
var cellWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// VisibleLen returns the terminal column width of s, excluding ANSI escape
// sequences. Wide runes (CJK, most emoji) count as two columns.
func VisibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		if r == '\033' {
			inEsc = true
			continue
		}
		n += cellWidth.RuneWidth(r)
	}
	return n
}

// Table pads columns by visible width so colored cells line up.
// The last column is never padded.
type Table struct {
	rows [][]string
	gap  int
}

// NewTable creates a Table with the given inter-column gap (number of spaces).
func NewTable(gap int) *Table {
	return &Table{gap: gap}
}

// AddRow appends a row of cells to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the formatted table to w.
func (t *Table) Render(w io.Writer) {
	if len(t.rows) == 0 {
		return
	}

	widths := t.columnWidths()
	pad := strings.Repeat(" ", t.gap)

	for _, row := range t.rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString(pad)
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-VisibleLen(cell)))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

func (t *Table) columnWidths() []int {
	var widths []int
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], VisibleLen(cell))
		}
	}
	return widths
}
