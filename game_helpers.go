package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/gol-universe/model"
	"github.com/sheikhrachel/gol-universe/render"
	"github.com/sheikhrachel/gol-universe/utils"
)

// game tracks the run state around a grid.
type game struct {
	config  utils.Config
	grid    *model.Grid
	history model.History
	stats   *utils.Stats
	logger  *slog.Logger

	generation     int
	lastRestartGen int
	stagnantCount  int
	lastFrameTime  time.Time
	paused         bool
}

func newGame(config utils.Config, grid *model.Grid, logger *slog.Logger) *game {
	return &game{
		config:        config,
		grid:          grid,
		stats:         utils.NewStats(),
		logger:        logger,
		lastFrameTime: time.Now(),
	}
}

// advance runs one frame's worth of generations and applies the restart
// rules. It reports whether the whole grid must be redrawn because the diff
// list no longer covers every change since the last frame.
func (g *game) advance() bool {
	frameStart := time.Now()
	g.grid.TickN(g.config.TicksPerStep)
	g.generation += g.config.TicksPerStep

	livingCells := g.grid.Population()
	g.stats.Update(g.generation, livingCells, g.grid.ChangedCount(), time.Since(g.lastFrameTime))
	g.lastFrameTime = frameStart

	// Update stagnation counter
	if g.history.Observe(g.grid.Hash()) {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	if g.config.AutoRestart {
		if restart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.config); restart {
			g.logger.Info("restarting", "reason", reason, "generation", g.generation)
			g.restart()
			return false
		}
	}
	return g.config.TicksPerStep > 1
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restart refills the grid at random. The grid's diff list then covers every
// cell.
func (g *game) restart() {
	g.grid.Reset()
	g.history.Reset()
	g.stagnantCount = 0
	g.lastRestartGen = g.generation
}

// done reports whether the generation limit was reached.
func (g *game) done() bool {
	return g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations
}

func (g *game) elapsed() time.Duration {
	return time.Since(g.stats.StartTime)
}

// status summarizes the current frame for the status line.
func (g *game) status() string {
	fps := g.stats.FPS()
	line := fmt.Sprintf("Gen: %d | Living: %d | Changed: %d | %.0f fps (avg %.0f, min %.0f, max %.0f) | x%d",
		g.generation, g.grid.Population(), g.grid.ChangedCount(),
		fps.Latest, fps.Mean, fps.Min, fps.Max, g.config.TicksPerStep)
	if g.generation > g.lastRestartGen {
		line += fmt.Sprintf(" | since restart: %d", g.generation-g.lastRestartGen)
	}
	if g.paused {
		line += " | paused"
	}
	return line
}

// edit runs a grid mutation, turning out-of-range panics from legacy stamping
// into errors.
func (g *game) edit(op func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !errors.Is(e, model.ErrOutOfRange) {
				panic(r)
			}
			err = e
		}
	}()
	op()
	return nil
}

func (g *game) frameInterval() time.Duration {
	return max(g.config.FrameRate, time.Millisecond)
}

// runPlain prints whole frames as text until the context ends or the
// generation limit is reached.
func (g *game) runPlain(ctx context.Context, out io.Writer) error {
	renderer := &model.TextRenderer{Out: out, Redraw: true}
	ticker := time.NewTicker(g.frameInterval())
	defer ticker.Stop()

	for {
		if err := renderer.Display(g.grid); err != nil {
			return errors.Wrap(err, "[runPlain]")
		}
		if _, err := fmt.Fprintln(out, g.status()); err != nil {
			return errors.Wrap(err, "[runPlain] failed to write status")
		}
		if g.done() {
			g.logger.Info("reached maximum generations limit", "max_generations", g.config.MaxGenerations)
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			g.advance()
		}
	}
}

// runInteractive drives the tcell screen. One goroutine pumps terminal events
// while the other owns the grid and the screen.
func (g *game) runInteractive(ctx context.Context) error {
	screen, err := render.NewScreen(g.config.Theme)
	if err != nil {
		return errors.Wrap(err, "[runInteractive]")
	}

	ctx, cancel := context.WithCancel(ctx)
	events := make(chan tcell.Event)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		defer cancel()
		defer screen.Close()
		return g.loop(ctx, screen, events)
	})

	return eg.Wait()
}

func (g *game) loop(ctx context.Context, screen *render.Screen, events <-chan tcell.Event) error {
	ticker := time.NewTicker(g.frameInterval())
	defer ticker.Stop()

	var buttons tcell.ButtonMask
	g.redraw(screen, true)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if g.paused {
				continue
			}
			g.redraw(screen, g.advance())
			if g.done() {
				g.logger.Info("reached maximum generations limit", "max_generations", g.config.MaxGenerations)
				return nil
			}

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				g.redraw(screen, true)
			case *tcell.EventKey:
				if g.handleKey(screen, ev) {
					return nil
				}
			case *tcell.EventMouse:
				pressed := ev.Buttons()&tcell.Button1 != 0 && buttons&tcell.Button1 == 0
				buttons = ev.Buttons()
				if pressed {
					x, y := ev.Position()
					g.handleClick(screen, x, y, ev.Modifiers())
				}
			}
		}
	}
}

func (g *game) redraw(screen *render.Screen, full bool) {
	if full {
		screen.DrawAll(g.grid)
	} else {
		screen.DrawChanged(g.grid)
	}
	screen.DrawStatus(g.grid, g.status())
}

// handleKey applies a key binding and reports whether to quit.
func (g *game) handleKey(screen *render.Screen, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	full := false
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		g.paused = !g.paused
	case 'n':
		full = g.advance()
	case 'r':
		g.restart()
	case 'c':
		g.grid.Clear()
		g.history.Reset()
	case '+', '=':
		g.config.TicksPerStep++
	case '-':
		g.config.TicksPerStep = max(g.config.TicksPerStep-1, 1)
	case 't':
		screen.SetTheme(render.NextTheme(screen.Theme().Name))
		full = true
	default:
		return false
	}
	g.redraw(screen, full)
	return false
}

// handleClick toggles a cell, or stamps a pulsar with shift and a glider with
// ctrl, alt or meta.
func (g *game) handleClick(screen *render.Screen, x, y int, mods tcell.ModMask) {
	row, col, ok := screen.CellAt(g.grid, x, y)
	if !ok {
		return
	}

	err := g.edit(func() {
		switch {
		case mods&tcell.ModShift != 0:
			g.grid.InsertPulsar(row, col)
		case mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0:
			g.grid.InsertGlider(row, col)
		default:
			g.grid.ToggleCell(row, col)
		}
	})
	if err != nil {
		g.logger.Warn("pattern clipped at grid edge", "row", row, "col", col, "error", err)
	}
	g.redraw(screen, false)
}
