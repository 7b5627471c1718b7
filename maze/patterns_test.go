package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "random", PatternRandom.String())
	assert.Equal(t, "spanning-tree", PatternSpanningTree.String())
	assert.Equal(t, "geometric", PatternGeometric.String())
	assert.Equal(t, "concentric", PatternConcentric.String())
	assert.Equal(t, "symmetric", PatternSymmetric.String())
}

func TestRandomPatternResolvesToConcreteBuilder(t *testing.T) {
	seen := make(map[PatternType]bool)
	for seed := int64(0); seed < 64; seed++ {
		resolved, gen := PatternRandom.builder(rand.New(rand.NewSource(seed)))
		require.NotEqual(t, PatternRandom, resolved)
		require.NotNil(t, gen)
		seen[resolved] = true
	}
	assert.Len(t, seen, 4, "all four patterns should come up")
}

// Every pattern feeds the same downstream pipeline; none has to be fully
// connected on its own, but the full generate pass must always end
// solvable with the exit open.
func TestAllPatternsProduceValidMazes(t *testing.T) {
	patterns := []PatternType{
		PatternSpanningTree,
		PatternGeometric,
		PatternConcentric,
		PatternSymmetric,
	}

	for _, pattern := range patterns {
		t.Run(pattern.String(), func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				cfg := testConfig(seed)
				cfg.Pattern = pattern
				m, err := New(cfg)
				require.NoError(t, err)

				assert.Equal(t, pattern, m.Pattern())
				assert.False(t, m.IsWall(m.Exit()))

				changed, err := EnsureSolvable(m.grid, m.Exit())
				require.NoError(t, err)
				assert.False(t, changed, "pattern %s seed %d left an unsolvable maze", pattern, seed)

				assert.Greater(t, countOpen(m.grid), 0)
			}
		})
	}
}

// Pattern fills never write outside the grid even on tiny dimensions.
func TestPatternsTolerateSmallGrids(t *testing.T) {
	for _, pattern := range []PatternType{
		PatternSpanningTree,
		PatternGeometric,
		PatternConcentric,
		PatternSymmetric,
	} {
		t.Run(pattern.String(), func(t *testing.T) {
			cfg := Config{Width: 5, Height: 5, Seed: 3, Pattern: pattern}
			m, err := New(cfg)
			require.NoError(t, err)
			assert.False(t, m.IsWall(m.Exit()))
		})
	}
}
