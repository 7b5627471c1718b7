package maze

// Point is an integer cell coordinate inside the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// cardinals are the four orthogonal step offsets (N, E, S, W).
var cardinals = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Grid is the authoritative wall/path state of a maze. true means wall.
// Dimensions are fixed after construction; every operation is total and
// branches on bounds instead of panicking, since neighbor enumeration near
// edges runs constantly on the mutation path.
type Grid struct {
	cells  [][]bool // indexed cells[x][y]
	width  int
	height int
}

// NewGrid returns a width-by-height grid with every cell set to wall.
func NewGrid(width, height int) *Grid {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
		for y := range cells[x] {
			cells[x][y] = true
		}
	}
	return &Grid{cells: cells, width: width, height: height}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsWall reports whether p is a wall cell. Out-of-bounds counts as wall,
// which keeps edge handling uniform for callers walking neighbors.
func (g *Grid) IsWall(p Point) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.cells[p.X][p.Y]
}

// IsPath reports whether p is an open, walkable cell.
func (g *Grid) IsPath(p Point) bool {
	return g.InBounds(p) && !g.cells[p.X][p.Y]
}

// Set writes the wall state of p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Point, wall bool) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.X][p.Y] = wall
}

// OrthogonalNeighbors returns the in-bounds N/E/S/W neighbors of p.
func (g *Grid) OrthogonalNeighbors(p Point) []Point {
	result := make([]Point, 0, 4)
	for _, d := range cardinals {
		n := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if g.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// OpenNeighborCount returns how many of p's orthogonal neighbors are open.
func (g *Grid) OpenNeighborCount(p Point) int {
	count := 0
	for _, d := range cardinals {
		if g.IsPath(Point{X: p.X + d.X, Y: p.Y + d.Y}) {
			count++
		}
	}
	return count
}

// Cells returns a deep copy of the wall state, indexed [x][y].
func (g *Grid) Cells() [][]bool {
	out := make([][]bool, g.width)
	for x := range out {
		out[x] = make([]bool, g.height)
		copy(out[x], g.cells[x])
	}
	return out
}

// fill sets every cell to the given wall state.
func (g *Grid) fill(wall bool) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			g.cells[x][y] = wall
		}
	}
}
