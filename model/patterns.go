package model

import "github.com/pkg/errors"

// StampMode controls how template offsets that fall off the grid are handled.
type StampMode int

const (
	// StampWrap wraps stamped coordinates around the torus so every template
	// cell is written.
	StampWrap StampMode = iota
	// StampLegacy writes a template cell only when the product of its shifted
	// row and column is non-negative. Cells with mixed-sign coordinates are
	// skipped; cells that pass but land outside the grid panic.
	StampLegacy
)

// ErrInvalidTemplate is returned for templates that are not odd-sized squares.
var ErrInvalidTemplate = errors.New("invalid template")

// Template is a square bitmap stamped centered on a cell. Cells holds Size*Size
// entries in row-major order, 1 for alive.
type Template struct {
	Name  string
	Size  int
	Cells []uint8
}

// Glider is a glider travelling one cell down and right every 4 generations.
var Glider = Template{
	Name: "glider",
	Size: 5,
	Cells: []uint8{
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		1, 0, 1, 0, 0,
		0, 1, 1, 0, 0,
		0, 0, 0, 0, 0,
	},
}

// Pulsar is the period 3 oscillator.
var Pulsar = Template{
	Name: "pulsar",
	Size: 15,
	Cells: []uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0,
		0, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0,
		0, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0,
		0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0,
		0, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0,
		0, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0,
		0, 1, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
}

// Validate checks that the template is an odd-sized square.
func (t Template) Validate() error {
	if t.Size <= 0 || t.Size%2 == 0 {
		return errors.Wrapf(ErrInvalidTemplate, "%q has even or non-positive size %d", t.Name, t.Size)
	}
	if len(t.Cells) != t.Size*t.Size {
		return errors.Wrapf(ErrInvalidTemplate, "%q has %d cells, want %d", t.Name, len(t.Cells), t.Size*t.Size)
	}
	return nil
}

// InsertGlider stamps a glider centered at (row, col).
func (g *Grid) InsertGlider(row, col int) {
	g.stamp(row, col, Glider)
}

// InsertPulsar stamps a pulsar centered at (row, col).
func (g *Grid) InsertPulsar(row, col int) {
	g.stamp(row, col, Pulsar)
}

// InsertTemplate stamps t centered at (row, col) through SetCell, so every
// written cell is appended to the diff list.
func (g *Grid) InsertTemplate(row, col int, t Template) error {
	if err := t.Validate(); err != nil {
		return errors.Wrap(err, "[InsertTemplate]")
	}
	g.stamp(row, col, t)
	return nil
}

func (g *Grid) stamp(row, col int, t Template) {
	g.mustContain("InsertTemplate", row, col)

	half := t.Size / 2
	i := 0
	for dr := -half; dr <= half; dr++ {
		for dc := -half; dc <= half; dc++ {
			alive := t.Cells[i] == 1
			i++

			r, c := row+dr, col+dc
			switch g.stamping {
			case StampLegacy:
				if r*c < 0 {
					continue
				}
			default:
				r, c = wrap(r, g.height), wrap(c, g.width)
			}
			g.SetCell(r, c, alive)
		}
	}
}

func wrap(v, n int) int {
	return (v%n + n) % n
}
