package model

import (
	"slices"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/rules"
)

type cell struct{ row, col int }

// newEmpty returns a cleared grid whose diff list is empty.
func newEmpty(t *testing.T, width, height int, opts ...Option) *Grid {
	t.Helper()
	g, err := New(width, height, append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", width, height, err)
	}
	g.Clear()
	g.Tick()
	if g.ChangedCount() != 0 {
		t.Fatalf("empty grid reported %d changes", g.ChangedCount())
	}
	return g
}

func liveCells(g *Grid) []cell {
	var live []cell
	for row := range g.Height() {
		for col := range g.Width() {
			if g.Alive(row, col) {
				live = append(live, cell{row, col})
			}
		}
	}
	return live
}

func setAll(g *Grid, cells ...cell) {
	for _, c := range cells {
		g.SetCell(c.row, c.col, true)
	}
}

func TestNewReportsEveryCellChanged(t *testing.T) {
	g, err := New(7, 5, WithSeed(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Len() != 35 {
		t.Fatalf("Len = %d, expected 35", g.Len())
	}
	if g.ChangedCount() != 35 {
		t.Fatalf("ChangedCount = %d, expected 35", g.ChangedCount())
	}
	for i, idx := range g.Changed() {
		if int(idx) != i {
			t.Fatalf("Changed()[%d] = %d", i, idx)
		}
	}
	if pop := g.Population(); pop == 0 || pop == 35 {
		t.Fatalf("random fill produced population %d", pop)
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {1 << 20, 1 << 20}} {
		_, err := New(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("New(%d, %d) error = %v, expected ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestSeededGridsMatch(t *testing.T) {
	a, _ := New(40, 30, WithSeed(42))
	b, _ := New(40, 30, WithSeed(42))
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("grids with equal seeds differ")
	}

	a.Tick()
	b.Tick()
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("tick not deterministic for cells")
	}
	if !slices.Equal(a.Changed(), b.Changed()) {
		t.Fatal("tick not deterministic for diff list")
	}
}

func TestCornerWraparound(t *testing.T) {
	g := newEmpty(t, 5, 4)
	g.SetCell(3, 4, true)
	if n := g.LiveNeighbors(0, 0); n != 1 {
		t.Fatalf("(0,0) sees %d neighbors, expected 1", n)
	}

	g.SetCell(0, 0, true)
	if n := g.LiveNeighbors(3, 4); n != 1 {
		t.Fatalf("(3,4) sees %d neighbors, expected 1", n)
	}
}

func TestBlockIsStillLife(t *testing.T) {
	g := newEmpty(t, 6, 6)
	block := []cell{{2, 2}, {2, 3}, {3, 2}, {3, 3}}
	setAll(g, block...)

	g.Tick()
	if g.ChangedCount() != 0 {
		t.Fatalf("block changed %d cells", g.ChangedCount())
	}
	if got := liveCells(g); !slices.Equal(got, block) {
		t.Fatalf("block became %v", got)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := newEmpty(t, 5, 5)
	horizontal := []cell{{2, 1}, {2, 2}, {2, 3}}
	vertical := []cell{{1, 2}, {2, 2}, {3, 2}}
	setAll(g, horizontal...)

	g.Tick()
	if got := liveCells(g); !slices.Equal(got, vertical) {
		t.Fatalf("after one tick live cells = %v, expected %v", got, vertical)
	}
	if g.ChangedCount() != 4 {
		t.Fatalf("ChangedCount = %d, expected 4", g.ChangedCount())
	}

	g.Tick()
	if got := liveCells(g); !slices.Equal(got, horizontal) {
		t.Fatalf("after second tick live cells = %v, expected %v", got, horizontal)
	}
}

func TestDiffMatchesFlippedCells(t *testing.T) {
	g, _ := New(17, 13, WithSeed(7))
	for range 5 {
		before := make([]bool, g.Len())
		for i := range before {
			before[i] = g.Alive(i/g.Width(), i%g.Width())
		}

		g.Tick()

		var expected []uint32
		for i, was := range before {
			if g.Alive(i/g.Width(), i%g.Width()) != was {
				expected = append(expected, uint32(i))
			}
		}
		if !slices.Equal(g.Changed(), expected) {
			t.Fatalf("diff = %v, expected %v", g.Changed(), expected)
		}
		if g.ChangedCount() != len(expected) {
			t.Fatalf("ChangedCount = %d, expected %d", g.ChangedCount(), len(expected))
		}
	}
}

func TestClearReportsEveryCell(t *testing.T) {
	g, _ := New(8, 8, WithSeed(5))
	g.Clear()
	if g.Population() != 0 {
		t.Fatalf("Clear left %d live cells", g.Population())
	}
	if g.ChangedCount() != 64 {
		t.Fatalf("ChangedCount after Clear = %d, expected 64", g.ChangedCount())
	}

	g.Tick()
	if g.ChangedCount() != 0 {
		t.Fatalf("tick on a dead grid changed %d cells", g.ChangedCount())
	}
}

func TestResize(t *testing.T) {
	g, _ := New(4, 4, WithSeed(9))

	if err := g.Resize(7, 3); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if g.Width() != 7 || g.Height() != 3 || g.Len() != 21 {
		t.Fatalf("after Resize got %dx%d len %d", g.Width(), g.Height(), g.Len())
	}
	if g.ChangedCount() != 21 {
		t.Fatalf("ChangedCount after Resize = %d, expected 21", g.ChangedCount())
	}

	if err := g.SetWidth(100); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if g.Len() != 300 || len(g.Cells()) != 5 {
		t.Fatalf("after SetWidth len %d words %d", g.Len(), len(g.Cells()))
	}

	if err := g.SetHeight(2); err != nil {
		t.Fatalf("SetHeight: %v", err)
	}
	if g.Width() != 100 || g.Height() != 2 {
		t.Fatalf("after SetHeight got %dx%d", g.Width(), g.Height())
	}

	if err := g.SetHeight(0); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("SetHeight(0) error = %v", err)
	}
	if g.Width() != 100 || g.Height() != 2 {
		t.Fatalf("failed resize changed dimensions to %dx%d", g.Width(), g.Height())
	}
}

func TestToggleCellReplacesDiff(t *testing.T) {
	g, _ := New(6, 6, WithSeed(2))
	was := g.Alive(1, 4)

	g.ToggleCell(1, 4)
	if g.Alive(1, 4) == was {
		t.Fatal("ToggleCell did not flip the cell")
	}
	if !slices.Equal(g.Changed(), []uint32{10}) {
		t.Fatalf("diff after ToggleCell = %v, expected [10]", g.Changed())
	}
}

func TestSetCellAppends(t *testing.T) {
	g := newEmpty(t, 4, 4)
	g.SetCell(0, 1, true)
	g.SetCell(0, 1, true)
	g.SetCell(3, 3, false)

	if !slices.Equal(g.Changed(), []uint32{1, 1, 15}) {
		t.Fatalf("diff = %v, expected [1 1 15]", g.Changed())
	}
	if g.ChangedCount() != 3 {
		t.Fatalf("ChangedCount = %d, expected 3", g.ChangedCount())
	}
}

func TestOutOfRangePanics(t *testing.T) {
	g := newEmpty(t, 3, 3)
	for _, c := range []cell{{-1, 0}, {0, 3}, {3, 0}} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("SetCell(%d, %d) recovered %v, expected ErrOutOfRange", c.row, c.col, r)
				}
			}()
			g.SetCell(c.row, c.col, true)
		}()
	}
}

func TestWithRule(t *testing.T) {
	ring := []cell{{1, 1}, {1, 2}, {1, 3}, {3, 1}, {3, 2}, {3, 3}}

	conway := newEmpty(t, 5, 5)
	setAll(conway, ring...)
	conway.Tick()
	if conway.Alive(2, 2) {
		t.Fatal("B3/S23 must not birth a cell with six neighbors")
	}

	highLife := newEmpty(t, 5, 5, WithRule(rules.HighLife))
	setAll(highLife, ring...)
	highLife.Tick()
	if !highLife.Alive(2, 2) {
		t.Fatal("HighLife must birth a cell with six neighbors")
	}
}

func TestParallelTickMatchesSequential(t *testing.T) {
	sequential, _ := New(33, 29, WithSeed(11))
	parallel, _ := New(33, 29, WithSeed(11), WithWorkers(4))

	for gen := range 10 {
		sequential.Tick()
		parallel.Tick()
		if !slices.Equal(sequential.Cells(), parallel.Cells()) {
			t.Fatalf("generation %d: cells differ", gen)
		}
		if !slices.Equal(sequential.Changed(), parallel.Changed()) {
			t.Fatalf("generation %d: diff lists differ", gen)
		}
	}
}

func TestSplitRows(t *testing.T) {
	if got := splitRows(10, 3); !slices.Equal(got, []int{3, 3, 4}) {
		t.Fatalf("splitRows(10, 3) = %v", got)
	}
	if got := splitRows(2, 8); !slices.Equal(got, []int{1, 1}) {
		t.Fatalf("splitRows(2, 8) = %v", got)
	}
}

func TestString(t *testing.T) {
	g := newEmpty(t, 3, 2)
	g.SetCell(0, 0, true)
	g.SetCell(1, 2, true)

	if got, want := g.String(), "\n◼◻◻\n◻◻◼"; got != want {
		t.Fatalf("String() = %q, expected %q", got, want)
	}
}
