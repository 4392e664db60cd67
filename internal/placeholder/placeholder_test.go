package placeholder

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchScore_InRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		score := MatchScore(rng)
		assert.GreaterOrEqual(t, score, MinMatchScore)
		assert.LessOrEqual(t, score, MaxMatchScore)
	}

	for i := 0; i < 100; i++ {
		score := MatchScore(nil)
		assert.GreaterOrEqual(t, score, MinMatchScore)
		assert.LessOrEqual(t, score, MaxMatchScore)
	}
}

func TestMatchScore_DeterministicWithSeed(t *testing.T) {
	a := rand.New(rand.NewPCG(7, 7))
	b := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 10; i++ {
		assert.Equal(t, MatchScore(a), MatchScore(b))
	}
}

func TestChartSeries_ReturnsIndependentCopies(t *testing.T) {
	first := ChartSeries()
	first.MatchingTrend[0].Matches = 999

	second := ChartSeries()
	assert.Equal(t, 12, second.MatchingTrend[0].Matches)
	assert.Len(t, second.MatchingTrend, 6)
	assert.Len(t, second.StatusDistribution, 3)
	assert.Len(t, second.AgeDistribution, 5)
	assert.Len(t, second.WeeklyActivity, 7)
}
