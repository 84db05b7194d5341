package model

import "golang.org/x/sync/errgroup"

// tickParallel evaluates row bands concurrently. Workers only read the current
// buffer and collect their band's diff; the scratch buffer is written after
// all workers finish because bands may share bitset words.
func (g *Grid) tickParallel() {
	var (
		eg    errgroup.Group
		bands = splitRows(g.height, g.workers)
		diffs = make([][]uint32, len(bands))
		start = 0
	)

	for i, rows := range bands {
		startRow, endRow := start, start+rows
		start = endRow

		eg.Go(func() error {
			var changed []uint32
			for row := startRow; row < endRow; row++ {
				for col := range g.width {
					idx := g.Index(row, col)
					alive := g.cells.Test(uint(idx))
					if g.rule(alive, g.liveNeighbors(row, col)) != alive {
						changed = append(changed, uint32(idx))
					}
				}
			}
			diffs[i] = changed
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		g.logger.Error("parallel tick failed", "error", err)
	}

	g.cells.Copy(g.scratch)
	g.diff = g.diff[:0]
	for _, changed := range diffs {
		for _, idx := range changed {
			g.scratch.Flip(uint(idx))
		}
		g.diff = append(g.diff, changed...)
	}
	g.cells, g.scratch = g.scratch, g.cells
}

// splitRows divides height rows between at most n workers, giving the
// remainder one extra row each to the last bands.
func splitRows(height, n int) []int {
	n = min(n, height)
	each := height / n
	bigger := height - each*n

	bands := make([]int, 0, n)
	for range n - bigger {
		bands = append(bands, each)
	}
	for range bigger {
		bands = append(bands, each+1)
	}
	return bands
}
