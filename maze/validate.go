package maze

import "errors"

// ErrNoPathCells is reported when a grid holds no open cell besides the
// exit, leaving the validator nothing to probe from. The generation
// pipeline never produces such a grid; callers treat the condition as
// diagnostic rather than fatal.
var ErrNoPathCells = errors.New("maze: no open cell to validate from")

// EnsureSolvable verifies that the exit can be reached from the grid's
// first open non-exit cell (row-major scan order) through 4-connected open
// cells, and repairs the grid when it cannot. The repair carves an
// axis-aligned L-shaped corridor from the probe cell to the exit,
// unconditionally converting every traversed cell to path. It restores
// connectivity, nothing more; route quality is not a goal.
//
// Returns true when the repair modified the grid. Running it on an
// already-solvable grid changes nothing.
func EnsureSolvable(g *Grid, exit Point) (bool, error) {
	probe, ok := firstPathCell(g, exit)
	if !ok {
		return false, ErrNoPathCells
	}
	if reaches(g, probe, exit) {
		return false, nil
	}
	carveL(g, probe, exit)
	return true, nil
}

// firstPathCell scans the grid in fixed row-major order for the first open
// cell that is not the exit.
func firstPathCell(g *Grid, exit Point) (Point, bool) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := Point{X: x, Y: y}
			if p != exit && g.IsPath(p) {
				return p, true
			}
		}
	}
	return Point{}, false
}

// reaches runs breadth-first search over open cells from start and reports
// whether goal was dequeued.
func reaches(g *Grid, start, goal Point) bool {
	if !g.IsPath(start) || !g.IsPath(goal) {
		return false
	}

	visited := make([]bool, g.Width()*g.Height())
	index := func(p Point) int { return p.Y*g.Width() + p.X }

	queue := make([]Point, 0, g.Width()*g.Height())
	queue = append(queue, start)
	visited[index(start)] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			return true
		}
		for _, d := range cardinals {
			n := Point{X: cur.X + d.X, Y: cur.Y + d.Y}
			if g.IsPath(n) && !visited[index(n)] {
				visited[index(n)] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// carveL opens a horizontal run from p's column to the exit's column at
// p's row, then a vertical run down to the exit at the exit's column.
func carveL(g *Grid, from, exit Point) {
	step := func(v int) int {
		if v < 0 {
			return -1
		}
		if v > 0 {
			return 1
		}
		return 0
	}

	x := from.X
	for dx := step(exit.X - from.X); x != exit.X; x += dx {
		g.Set(Point{X: x, Y: from.Y}, false)
	}
	y := from.Y
	for dy := step(exit.Y - from.Y); y != exit.Y; y += dy {
		g.Set(Point{X: exit.X, Y: y}, false)
	}
	g.Set(exit, false)
}
