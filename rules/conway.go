package rules

// Rule decides the next state of a cell from its current state and the number
// of live cells among its eight neighbors.
type Rule func(alive bool, neighbors int) bool

/*
Conway applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

The cases are checked in order and the first match wins:
  - a live cell with fewer than two live neighbors dies
  - a live cell with two or three live neighbors survives
  - a live cell with more than three live neighbors dies
  - a dead cell with exactly three live neighbors becomes alive
  - any other cell keeps its state
*/
func Conway(alive bool, neighbors int) bool {
	switch {
	case alive && neighbors < 2:
		return false
	case alive && (neighbors == 2 || neighbors == 3):
		return true
	case alive && neighbors > 3:
		return false
	case !alive && neighbors == 3:
		return true
	default:
		return alive
	}
}

// HighLife is B36/S23, kept as an alternate rule for WithRule.
func HighLife(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3 || neighbors == 6
}
