package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRank(t *testing.T) *RankEstimator {
	t.Helper()
	tables := DefaultReferenceTables()
	re, err := NewRankEstimator(tables.Rank, tables.RankFallback)
	require.NoError(t, err)
	return re
}

func TestRank_Boundaries(t *testing.T) {
	re := defaultRank(t)

	assert.Equal(t, 1, re.Estimate(100))
	assert.Equal(t, 1, re.Estimate(100.5))
	assert.Equal(t, 1250, re.Estimate(99.9))
	assert.Equal(t, 12500, re.Estimate(99.0))
	assert.Equal(t, 620000, re.Estimate(50))
}

func TestRank_Interpolates(t *testing.T) {
	re := defaultRank(t)

	// halfway between (99.0, 12500) and (98.0, 25000)
	got := re.Estimate(98.5)
	assert.InDelta(t, 18750, got, 1)

	got = re.Estimate(99.9999)
	assert.GreaterOrEqual(t, got, 1)
	assert.Less(t, got, 120)
}

func TestRank_FallbackBelowAnchors(t *testing.T) {
	re := defaultRank(t)

	assert.Equal(t, 744000, re.Estimate(40))
	assert.Equal(t, 1240000, re.Estimate(0))
}

func TestRank_NonIncreasingInPercentile(t *testing.T) {
	re := defaultRank(t)

	prev := re.Estimate(0)
	for p := 0.0; p <= 100; p += 0.01 {
		r := re.Estimate(p)
		require.LessOrEqual(t, r, prev, "percentile %.2f", p)
		require.GreaterOrEqual(t, r, 1)
		prev = r
	}
}

func TestRank_EmptyTable(t *testing.T) {
	_, err := NewRankEstimator(nil, 0)
	assert.Error(t, err)
}
