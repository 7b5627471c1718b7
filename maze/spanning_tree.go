package maze

import "math/rand"

// lattice step offsets used by the spanning-tree growth. Carved cells are
// always two apart so that a carvable wall cell sits between them.
var latticeSteps = [4]Point{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

// spanningTree grows a randomized Prim-style tree over the two-step lattice:
// every carved cell connects back to the start through exactly one corridor,
// so the base maze is fully connected and cycle free.
type spanningTree struct{}

func (spanningTree) fill(g *Grid, rng *rand.Rand) {
	start := Point{X: rng.Intn(g.Width()), Y: rng.Intn(g.Height())}
	carveTreeFrom(g, start, rng)
}

// carveTreeFrom runs the frontier loop starting at a given cell. Split out
// so tests can pin the start corner.
func carveTreeFrom(g *Grid, start Point, rng *rand.Rand) {
	g.Set(start, false)

	listed := map[Point]bool{start: true}
	frontier := latticeWallNeighbors(g, start, listed)

	for len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		cell := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		carved := latticeCarvedNeighbors(g, cell)
		if len(carved) == 0 {
			continue
		}
		into := carved[rng.Intn(len(carved))]

		g.Set(cell, false)
		// Knock down the wall cell between the frontier cell and the tree.
		g.Set(Point{X: (cell.X + into.X) / 2, Y: (cell.Y + into.Y) / 2}, false)

		frontier = append(frontier, latticeWallNeighbors(g, cell, listed)...)
	}
}

// latticeWallNeighbors returns the two-step neighbors of p that are still
// walls, in bounds, and not yet listed as frontier candidates. It records
// the returned cells in listed.
func latticeWallNeighbors(g *Grid, p Point, listed map[Point]bool) []Point {
	var out []Point
	for _, d := range latticeSteps {
		n := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if !g.InBounds(n) || g.IsPath(n) || listed[n] {
			continue
		}
		listed[n] = true
		out = append(out, n)
	}
	return out
}

// latticeCarvedNeighbors returns the two-step neighbors of p that are
// already open.
func latticeCarvedNeighbors(g *Grid, p Point) []Point {
	var out []Point
	for _, d := range latticeSteps {
		n := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if g.IsPath(n) {
			out = append(out, n)
		}
	}
	return out
}
