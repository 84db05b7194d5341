package model

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	glyphAlive = "◼"
	glyphDead  = "◻"

	ansiClear = "\033[H\033[2J"
)

// String renders the grid one row per line, each row preceded by a newline.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.Len()*len(glyphAlive) + g.height)
	for i := range g.Len() {
		if i%g.width == 0 {
			b.WriteByte('\n')
		}
		if g.cells.Test(uint(i)) {
			b.WriteString(glyphAlive)
		} else {
			b.WriteString(glyphDead)
		}
	}
	return b.String()
}

// TextRenderer writes whole frames as text, for terminals without cursor
// addressing or for piping to a file.
type TextRenderer struct {
	Out io.Writer
	// Redraw clears the terminal before each frame.
	Redraw bool
}

// Display writes the grid followed by a trailing newline.
func (r *TextRenderer) Display(g *Grid) error {
	frame := g.String() + "\n"
	if r.Redraw {
		frame = ansiClear + frame
	}
	if _, err := io.WriteString(r.Out, frame); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}
