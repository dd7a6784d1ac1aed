// Package progress reports progress of long imports and exports. Output goes
// to stderr so stdout stays clean for piping, and is only drawn on a
// terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the smallest total worth drawing progress for.
const minItems = 5

// Progress tracks and displays operation progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int
}

// New creates a progress reporter on stderr.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, label, total)
}

// NewWriter creates a progress reporter on w. Nothing is drawn unless w is a
// terminal.
func NewWriter(w io.Writer, label string, total int) *Progress {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Increment advances the counter by one and redraws.
func (p *Progress) Increment() {
	p.current++
	p.print()
}

// Current returns the number of completed items.
func (p *Progress) Current() int {
	return p.current
}

func (p *Progress) print() {
	if !p.isTTY || p.total < minItems {
		return
	}
	pct := (p.current * 100) / p.total
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
	p.width = max(p.width, len(line))
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.isTTY || p.total < minItems || p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}
