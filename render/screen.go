package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/model"
)

// cellWidth is the number of terminal columns per cell, keeping cells square.
const cellWidth = 2

// Screen paints a grid on a terminal. DrawChanged repaints only the cells in
// the grid's diff list, so steady-state frames cost O(changes).
type Screen struct {
	screen tcell.Screen
	theme  Theme
}

// NewScreen opens the controlling terminal.
func NewScreen(theme string) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "[NewScreen] failed to create screen")
	}
	return NewScreenWith(s, theme)
}

// NewScreenWith initializes an existing tcell screen, such as a simulation
// screen in tests.
func NewScreenWith(s tcell.Screen, theme string) (*Screen, error) {
	t, err := LookupTheme(theme)
	if err != nil {
		return nil, errors.Wrap(err, "[NewScreenWith]")
	}
	if err = s.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewScreenWith] failed to initialize screen")
	}
	s.EnableMouse()
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s, theme: t}, nil
}

// Theme returns the active theme.
func (s *Screen) Theme() Theme {
	return s.theme
}

// SetTheme switches colors. Callers should DrawAll afterwards.
func (s *Screen) SetTheme(t Theme) {
	s.theme = t
}

// DrawAll paints every cell.
func (s *Screen) DrawAll(g *model.Grid) {
	s.screen.Clear()
	words := g.Cells()
	for idx := range g.Len() {
		s.drawCell(g, words, idx)
	}
	s.screen.Show()
}

// DrawChanged paints only the cells reported by g.Changed.
func (s *Screen) DrawChanged(g *model.Grid) {
	words := g.Cells()
	for _, idx := range g.Changed() {
		s.drawCell(g, words, int(idx))
	}
	s.screen.Show()
}

func (s *Screen) drawCell(g *model.Grid, words []uint64, idx int) {
	row, col := idx/g.Width(), idx%g.Width()
	color := s.theme.Dead
	if words[idx/64]&(1<<(uint(idx)%64)) != 0 {
		color = s.theme.Alive
	}
	style := tcell.StyleDefault.Background(color)
	for dx := range cellWidth {
		s.screen.SetContent(col*cellWidth+dx, row, ' ', nil, style)
	}
}

// DrawStatus writes text on the line below the grid.
func (s *Screen) DrawStatus(g *model.Grid, text string) {
	width, _ := s.screen.Size()
	y := g.Height()
	style := tcell.StyleDefault.Foreground(s.theme.Text).Background(s.theme.Accent)

	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
	s.screen.Show()
}

// CellAt maps a terminal position to a grid cell.
func (s *Screen) CellAt(g *model.Grid, x, y int) (row, col int, ok bool) {
	row, col = y, x/cellWidth
	if x < 0 || row < 0 || row >= g.Height() || col >= g.Width() {
		return 0, 0, false
	}
	return row, col, true
}

// PollEvent blocks for the next terminal event. It returns nil after Close.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Sync redraws the terminal after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}
