package termcolor

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Color represents an ANSI color/style code.
type Color string

const (
	Bold   Color = "\033[1m"
	Green  Color = "\033[32m"
	Yellow Color = "\033[33m"
	Cyan   Color = "\033[36m"
	Gray   Color = "\033[90m"
	Reset  Color = "\033[0m"
)

// Painter applies ANSI colors to strings. A disabled Painter returns its
// input untouched.
type Painter struct {
	disabled bool
}

// NewPainter creates a Painter for output written to w. Colors are
// disabled if forceDisable is true, the NO_COLOR environment variable is
// set (per no-color.org), or w is not a terminal.
func NewPainter(w io.Writer, forceDisable bool) *Painter {
	if forceDisable {
		return &Painter{disabled: true}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return &Painter{disabled: true}
	}
	return &Painter{disabled: !IsTerminal(w)}
}

// IsTerminal reports whether w is a file descriptor attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether p emits escape codes.
func (p *Painter) Enabled() bool {
	return !p.disabled
}

// Paint wraps s with the given ANSI color codes. Returns s unmodified if
// colors are disabled or no colors are provided.
func (p *Painter) Paint(s string, colors ...Color) string {
	if p.disabled || len(colors) == 0 || s == "" {
		return s
	}
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(string(c))
	}
	b.WriteString(s)
	b.WriteString(string(Reset))
	return b.String()
}
