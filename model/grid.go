package model

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/rules"
	"github.com/sheikhrachel/gol-universe/utils"
)

// maxCells bounds width*height so every flat index fits a uint32 diff entry.
const maxCells = math.MaxUint32

var (
	// ErrInvalidDimensions is returned when a width or height is not positive
	// or the cell count exceeds maxCells.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfRange is the panic value for coordinates outside the grid.
	ErrOutOfRange = errors.New("cell out of range")
)

// Grid is a toroidal Life universe stored as two bit-packed buffers plus the
// list of cell indices that changed in the last mutating operation.
//
// A Grid is not safe for concurrent use.
type Grid struct {
	width   int
	height  int
	cells   *bitset.BitSet
	scratch *bitset.BitSet
	diff    []uint32

	rule     rules.Rule
	rng      *rand.Rand
	workers  int
	stamping StampMode
	logger   *slog.Logger
}

// New creates a randomly filled grid with the specified dimensions. Every
// cell is reported as changed so the first render draws the whole grid.
func New(width, height int, opts ...Option) (*Grid, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, errors.Wrap(err, "[New]")
	}

	g := &Grid{
		width:    width,
		height:   height,
		rule:     rules.Conway,
		workers:  1,
		stamping: StampWrap,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	g.allocate()
	g.Reset()
	return g, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d", width, height)
	}
	w, h := uint64(width), uint64(height)
	if w > maxCells || h > maxCells || w*h > maxCells {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d exceeds %d cells", width, height, uint64(maxCells))
	}
	return nil
}

func (g *Grid) allocate() {
	n := uint(g.Len())
	g.cells = bitset.New(n)
	g.scratch = bitset.New(n)
	g.diff = make([]uint32, 0, n)
}

// Width returns the width of the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid
func (g *Grid) Height() int {
	return g.height
}

// Len returns the number of cells, width*height.
func (g *Grid) Len() int {
	return g.width * g.height
}

// Cells exposes the packed bitmap of the current generation. Cell i lives in
// word i/64 at bit i%64. The slice is owned by the grid and must not be
// modified; it is invalidated by the next Tick or resize.
func (g *Grid) Cells() []uint64 {
	return g.cells.Bytes()
}

// Changed exposes the indices that changed in the last mutating operation.
// The slice is owned by the grid and is reused by the next operation.
func (g *Grid) Changed() []uint32 {
	return g.diff
}

// ChangedCount returns the number of valid entries in Changed.
func (g *Grid) ChangedCount() int {
	return len(g.diff)
}

// Index maps a cell to its flat row-major index. It does not check bounds.
func (g *Grid) Index(row, col int) int {
	return row*g.width + col
}

// Alive reports whether the cell at (row, col) is alive.
func (g *Grid) Alive(row, col int) bool {
	g.mustContain("Alive", row, col)
	return g.cells.Test(uint(g.Index(row, col)))
}

// Population returns the number of living cells.
func (g *Grid) Population() int {
	return int(g.cells.Count())
}

// Tick advances the grid by one generation. Rule evaluation reads only the
// current buffer; results go to the scratch buffer and the two are swapped.
func (g *Grid) Tick() {
	defer utils.NewTimer(g.logger, "Grid.Tick").Stop()

	if g.workers > 1 && g.height > 1 {
		g.tickParallel()
		return
	}

	g.diff = g.diff[:0]
	for row := range g.height {
		for col := range g.width {
			idx := g.Index(row, col)
			alive := g.cells.Test(uint(idx))
			next := g.rule(alive, g.liveNeighbors(row, col))
			g.scratch.SetTo(uint(idx), next)
			if next != alive {
				g.diff = append(g.diff, uint32(idx))
			}
		}
	}
	g.cells, g.scratch = g.scratch, g.cells
}

// TickN advances n generations. Changed reports the last generation only.
func (g *Grid) TickN(n int) {
	for range n {
		g.Tick()
	}
}

// LiveNeighbors counts the live cells among the eight toroidal neighbors of
// (row, col).
func (g *Grid) LiveNeighbors(row, col int) int {
	g.mustContain("LiveNeighbors", row, col)
	return g.liveNeighbors(row, col)
}

func (g *Grid) liveNeighbors(row, col int) int {
	north := row - 1
	if row == 0 {
		north = g.height - 1
	}
	south := row + 1
	if row == g.height-1 {
		south = 0
	}
	west := col - 1
	if col == 0 {
		west = g.width - 1
	}
	east := col + 1
	if col == g.width-1 {
		east = 0
	}

	neighbors := [8]int{
		g.Index(north, west), g.Index(north, col), g.Index(north, east),
		g.Index(row, west), g.Index(row, east),
		g.Index(south, west), g.Index(south, col), g.Index(south, east),
	}

	count := 0
	for _, idx := range neighbors {
		if g.cells.Test(uint(idx)) {
			count++
		}
	}
	return count
}

// SetWidth changes the width, discarding the current pattern.
func (g *Grid) SetWidth(width int) error {
	return errors.Wrap(g.Resize(width, g.height), "[SetWidth]")
}

// SetHeight changes the height, discarding the current pattern.
func (g *Grid) SetHeight(height int) error {
	return errors.Wrap(g.Resize(g.width, height), "[SetHeight]")
}

// Resize reallocates both buffers for the new dimensions and resets the grid.
// The previous pattern is not carried over.
func (g *Grid) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return errors.Wrap(err, "[Resize]")
	}
	g.width = width
	g.height = height
	g.allocate()
	g.Reset()
	return nil
}

// Reset fills every cell at random with probability 0.5 of being alive and
// marks every cell as changed.
func (g *Grid) Reset() {
	for i := range uint(g.Len()) {
		g.cells.SetTo(i, g.rng.IntN(2) == 1)
	}
	g.markAll()
}

// Clear kills every cell. Every index is reported as changed, including cells
// that were already dead.
func (g *Grid) Clear() {
	g.cells.ClearAll()
	g.markAll()
}

func (g *Grid) markAll() {
	n := g.Len()
	if cap(g.diff) < n {
		g.diff = make([]uint32, n)
	}
	g.diff = g.diff[:n]
	for i := range g.diff {
		g.diff[i] = uint32(i)
	}
}

// ToggleCell flips one cell. The diff list is replaced by that single index.
func (g *Grid) ToggleCell(row, col int) {
	g.mustContain("ToggleCell", row, col)
	idx := g.Index(row, col)
	g.cells.Flip(uint(idx))
	g.diff = append(g.diff[:0], uint32(idx))
}

// SetCell sets one cell and appends its index to the diff list without
// clearing earlier entries, so a batch of edits accumulates. Repeated calls
// for the same cell append duplicates.
func (g *Grid) SetCell(row, col int, alive bool) {
	g.mustContain("SetCell", row, col)
	idx := g.Index(row, col)
	g.cells.SetTo(uint(idx), alive)
	g.diff = append(g.diff, uint32(idx))
}

func (g *Grid) mustContain(op string, row, col int) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		panic(errors.Wrapf(ErrOutOfRange, "[%s] (%d, %d) on %dx%d grid", op, row, col, g.width, g.height))
	}
}
