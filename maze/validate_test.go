package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSolvable(t *testing.T) {
	t.Run("walled-off exit gets an L corridor", func(t *testing.T) {
		g := NewGrid(5, 5)
		exit := Point{X: 4, Y: 4}
		g.Set(exit, false)
		// A stranded open pocket far from the exit; all exit neighbors
		// stay walls.
		g.Set(Point{X: 0, Y: 0}, false)
		g.Set(Point{X: 1, Y: 0}, false)

		changed, err := EnsureSolvable(g, exit)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, reaches(g, Point{X: 0, Y: 0}, exit))
	})

	t.Run("idempotent on a solvable grid", func(t *testing.T) {
		g := NewGrid(5, 5)
		exit := Point{X: 4, Y: 4}
		g.Set(exit, false)
		g.Set(Point{X: 0, Y: 0}, false)

		changed, err := EnsureSolvable(g, exit)
		require.NoError(t, err)
		require.True(t, changed)

		before := g.Cells()
		changed, err = EnsureSolvable(g, exit)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, before, g.Cells())
	})

	t.Run("repair never walls anything in", func(t *testing.T) {
		g := NewGrid(7, 7)
		exit := Point{X: 0, Y: 3}
		g.Set(exit, false)
		g.Set(Point{X: 5, Y: 5}, false)

		openBefore := countOpen(g)
		changed, err := EnsureSolvable(g, exit)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.GreaterOrEqual(t, countOpen(g), openBefore)
	})

	t.Run("degenerate grid surfaces a diagnosable condition", func(t *testing.T) {
		g := NewGrid(4, 4)
		exit := Point{X: 3, Y: 0}
		g.Set(exit, false)

		before := g.Cells()
		changed, err := EnsureSolvable(g, exit)
		assert.ErrorIs(t, err, ErrNoPathCells)
		assert.False(t, changed)
		assert.Equal(t, before, g.Cells(), "no partial repair on a degenerate grid")
	})

	t.Run("probe scan is row-major", func(t *testing.T) {
		g := NewGrid(3, 3)
		g.Set(Point{X: 2, Y: 0}, false)
		g.Set(Point{X: 0, Y: 1}, false)

		probe, ok := firstPathCell(g, Point{X: 2, Y: 0})
		require.True(t, ok)
		assert.Equal(t, Point{X: 0, Y: 1}, probe)
	})
}

func countOpen(g *Grid) int {
	n := 0
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			if g.IsPath(Point{X: x, Y: y}) {
				n++
			}
		}
	}
	return n
}
