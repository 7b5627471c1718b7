/*
Package maze generates grid-based mazes that are always solvable to a
designated exit and keeps them that way while mutating them at runtime.

A maze is built in five steps: an all-wall grid, a base structure (a
randomized spanning tree or one of three decorative patterns), exit
placement on a boundary edge, a rule-based refinement pass, and a
solvability check with deterministic repair. After generation the owning
room drives Update every tick; on a fixed interval the maze applies a
batch of local wall/path conversions and re-validates solvability.

The package depends only on the standard library and draws all randomness
from an injected source, so identical seeds reproduce identical mazes.
Nothing here is safe for concurrent use; each maze belongs to exactly one
room loop.
*/
package maze

import (
	"errors"
	"math"
	"math/rand"
	"time"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	DefaultCellSize        = 2.0
	DefaultShiftInterval   = 60 * time.Second
	DefaultShiftChance     = 0.2
	DefaultExclusionRadius = 3.0
)

// ErrInvalidDimensions is returned by New for non-positive width or height.
var ErrInvalidDimensions = errors.New("maze: width and height must be positive")

// Config carries the generation-time parameters of a maze. All values are
// read once by New and constant for the instance's lifetime.
type Config struct {
	Width    int
	Height   int
	CellSize float64 // world units per cell, used by collision mapping

	ShiftInterval   time.Duration // time between shift firings
	ShiftChance     float64       // per-cell conversion probability per firing
	ExclusionRadius float64       // cells closer to the exit are never mutated

	Pattern PatternType // base-structure choice; PatternRandom by default
	Seed    int64       // 0 seeds from the wall clock
}

// Maze is the authoritative maze state owned by a single game room. It is
// created once per round, mutated in place by generation and shifting, and
// discarded with the room.
type Maze struct {
	grid     *Grid
	width    int
	height   int
	cellSize float64
	exit     Point

	pattern         PatternType
	shiftInterval   time.Duration
	shiftChance     float64
	exclusionRadius float64

	countdown time.Duration
	rng       *rand.Rand
}

// New validates the configuration, resolves defaults, and generates the
// initial maze.
func New(cfg Config) (*Maze, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if cfg.CellSize == 0 {
		cfg.CellSize = DefaultCellSize
	}
	if cfg.ShiftInterval == 0 {
		cfg.ShiftInterval = DefaultShiftInterval
	}
	if cfg.ShiftChance == 0 {
		cfg.ShiftChance = DefaultShiftChance
	}
	if cfg.ExclusionRadius == 0 {
		cfg.ExclusionRadius = DefaultExclusionRadius
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pattern, _ := cfg.Pattern.builder(rng)

	m := &Maze{
		grid:            NewGrid(cfg.Width, cfg.Height),
		width:           cfg.Width,
		height:          cfg.Height,
		cellSize:        cfg.CellSize,
		pattern:         pattern,
		shiftInterval:   cfg.ShiftInterval,
		shiftChance:     cfg.ShiftChance,
		exclusionRadius: cfg.ExclusionRadius,
		rng:             rng,
	}
	m.Generate()
	return m, nil
}

// Generate rebuilds the maze in place: base structure, exit placement,
// refinement, and a final solvability pass. Dimensions and the pattern
// choice are preserved across regenerations.
func (m *Maze) Generate() {
	m.grid.fill(true)

	_, gen := m.pattern.builder(m.rng)
	gen.fill(m.grid, m.rng)

	m.placeExit()

	r := &refiner{g: m.grid, rng: m.rng, skip: m.inExclusionZone}
	r.run()

	// Refinement never touches the exclusion zone, so the exit survives;
	// the repair pass restores any connectivity the passes broke.
	_, _ = EnsureSolvable(m.grid, m.exit)
	m.countdown = m.shiftInterval
}

// placeExit opens a random boundary cell as the exit, along with its inward
// neighbor so the exit is not a sealed pocket.
func (m *Maze) placeExit() {
	var exit, inward Point
	switch m.rng.Intn(4) {
	case 0:
		exit = Point{X: m.rng.Intn(m.width), Y: 0}
		inward = Point{X: exit.X, Y: 1}
	case 1:
		exit = Point{X: m.rng.Intn(m.width), Y: m.height - 1}
		inward = Point{X: exit.X, Y: m.height - 2}
	case 2:
		exit = Point{X: 0, Y: m.rng.Intn(m.height)}
		inward = Point{X: 1, Y: exit.Y}
	default:
		exit = Point{X: m.width - 1, Y: m.rng.Intn(m.height)}
		inward = Point{X: m.width - 2, Y: exit.Y}
	}
	m.exit = exit
	m.grid.Set(exit, false)
	m.grid.Set(inward, false)
}

// Update advances the shift countdown by the elapsed tick time and fires a
// shift when the interval has passed. It returns true when the firing
// changed any cell, which the owning room uses to broadcast the new layout.
func (m *Maze) Update(delta time.Duration) bool {
	m.countdown -= delta
	if m.countdown > 0 {
		return false
	}
	m.countdown = m.shiftInterval
	return m.shift()
}

// inExclusionZone reports whether p lies within the protected radius
// around the exit.
func (m *Maze) inExclusionZone(p Point) bool {
	dx := float64(p.X - m.exit.X)
	dy := float64(p.Y - m.exit.Y)
	return math.Sqrt(dx*dx+dy*dy) < m.exclusionRadius
}

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// CellSize returns the world-unit size of one cell.
func (m *Maze) CellSize() float64 { return m.cellSize }

// Exit returns the designated exit cell.
func (m *Maze) Exit() Point { return m.exit }

// Pattern returns the base-structure pattern resolved at construction.
func (m *Maze) Pattern() PatternType { return m.pattern }

// IsWall reports whether the cell at p blocks movement.
func (m *Maze) IsWall(p Point) bool { return m.grid.IsWall(p) }

// CellAt maps world coordinates onto the grid for collision queries.
func (m *Maze) CellAt(worldX, worldZ float64) Point {
	return Point{
		X: int(math.Floor(worldX / m.cellSize)),
		Y: int(math.Floor(worldZ / m.cellSize)),
	}
}

// Snapshot is the read-only serializable maze value handed to consumers:
// the broadcast layer sends it wholesale, the collision system indexes
// Grid[x][y], the renderer diffs consecutive snapshots.
type Snapshot struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	CellSize float64  `json:"cellSize"`
	Grid     [][]bool `json:"grid"` // true = wall, indexed [x][y]
	Exit     Point    `json:"exitPosition"`
}

// Snapshot copies the current maze value. Mutating the copy has no effect
// on the maze.
func (m *Maze) Snapshot() Snapshot {
	return Snapshot{
		Width:    m.width,
		Height:   m.height,
		CellSize: m.cellSize,
		Grid:     m.grid.Cells(),
		Exit:     m.exit,
	}
}
