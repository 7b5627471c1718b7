package maze

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(seed int64) Config {
	return Config{
		Width:         20,
		Height:        20,
		CellSize:      2,
		ShiftInterval: time.Minute,
		ShiftChance:   0.2,
		Seed:          seed,
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, cfg := range []Config{
		{Width: 0, Height: 10},
		{Width: 10, Height: 0},
		{Width: -3, Height: 5},
	} {
		_, err := New(cfg)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	m, err := New(Config{Width: 10, Height: 10, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, DefaultCellSize, m.CellSize())
	assert.NotEqual(t, PatternRandom, m.Pattern())
}

func TestGenerateIsDeterministicForASeed(t *testing.T) {
	a, err := New(testConfig(42))
	require.NoError(t, err)
	b, err := New(testConfig(42))
	require.NoError(t, err)

	assert.Equal(t, a.Exit(), b.Exit())
	assert.Equal(t, a.Pattern(), b.Pattern())
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestGeneratedMazeInvariants(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m, err := New(testConfig(seed))
		require.NoError(t, err)

		exit := m.Exit()
		onBoundary := exit.X == 0 || exit.X == m.Width()-1 ||
			exit.Y == 0 || exit.Y == m.Height()-1
		assert.True(t, onBoundary, "exit %v not on a boundary edge (seed %d)", exit, seed)
		assert.False(t, m.IsWall(exit), "exit must be open (seed %d)", seed)

		changed, err := EnsureSolvable(m.grid, exit)
		require.NoError(t, err)
		assert.False(t, changed, "freshly generated maze must already be solvable (seed %d)", seed)
	}
}

func TestRegenerationKeepsDimensionsAndPattern(t *testing.T) {
	m, err := New(testConfig(7))
	require.NoError(t, err)
	pattern := m.Pattern()

	for i := 0; i < 5; i++ {
		m.Generate()
		assert.Equal(t, 20, m.Width())
		assert.Equal(t, 20, m.Height())
		assert.Equal(t, pattern, m.Pattern())
		assert.False(t, m.IsWall(m.Exit()))
	}
}

func TestUpdateFiresOnInterval(t *testing.T) {
	cfg := testConfig(3)
	cfg.ShiftInterval = time.Second
	m, err := New(cfg)
	require.NoError(t, err)

	assert.False(t, m.Update(400*time.Millisecond))
	assert.False(t, m.Update(400*time.Millisecond))

	before := m.Snapshot()
	shifted := m.Update(400 * time.Millisecond) // crosses the interval
	if shifted {
		assert.NotEqual(t, before.Grid, m.Snapshot().Grid)
	} else {
		assert.Equal(t, before.Grid, m.Snapshot().Grid)
	}

	// Countdown resets after a firing.
	assert.False(t, m.Update(400*time.Millisecond))
}

func TestCellAtMapsWorldCoordinates(t *testing.T) {
	m, err := New(testConfig(9))
	require.NoError(t, err)

	assert.Equal(t, Point{X: 0, Y: 0}, m.CellAt(0.5, 1.9))
	assert.Equal(t, Point{X: 2, Y: 3}, m.CellAt(4.1, 7.99))
	assert.Equal(t, Point{X: -1, Y: 0}, m.CellAt(-0.1, 0))
}

func TestSnapshotIsDetached(t *testing.T) {
	m, err := New(testConfig(11))
	require.NoError(t, err)

	snap := m.Snapshot()
	snap.Grid[1][1] = !snap.Grid[1][1]
	assert.NotEqual(t, snap.Grid[1][1], m.Snapshot().Grid[1][1])
}
