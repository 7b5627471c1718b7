package maze

// conversion is one pending wall/path flip collected during a shift scan.
type conversion struct {
	p      Point
	toWall bool
}

// shift performs one scheduled mutation firing. Interior cells outside the
// exit's exclusion zone are each given a shiftChance draw; candidates that
// pass the neighbor-count guards are collected into a batch and applied
// atomically, so no conversion invalidates another's evaluation mid-scan.
// The solvability validator runs immediately afterwards to repair any
// disconnection the batch introduced.
//
// The guards keep the topology sane: a wall only opens where at most two
// neighbors are already open (no large voids), and a path cell only closes
// where at least three neighbors remain open (no severed corridors).
func (m *Maze) shift() bool {
	var batch []conversion

	for y := 1; y < m.height-1; y++ {
		for x := 1; x < m.width-1; x++ {
			p := Point{X: x, Y: y}
			// The exclusion zone is skipped before any random draw, so
			// cells near the exit never consume randomness either.
			if m.inExclusionZone(p) {
				continue
			}
			if m.rng.Float64() >= m.shiftChance {
				continue
			}

			open := m.grid.OpenNeighborCount(p)
			if m.grid.IsWall(p) {
				if open <= 2 {
					batch = append(batch, conversion{p: p, toWall: false})
				}
			} else if open >= 3 {
				batch = append(batch, conversion{p: p, toWall: true})
			}
		}
	}

	for _, c := range batch {
		m.grid.Set(c.p, c.toWall)
	}

	repaired, err := EnsureSolvable(m.grid, m.exit)
	if err != nil {
		// Degenerate grid with nothing to probe from; nothing to repair
		// and never worth crashing a live room over.
		return len(batch) > 0
	}
	return len(batch) > 0 || repaired
}
