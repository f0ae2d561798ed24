package scoring

import (
	"fmt"
	"sort"
)

// RankRangePoint is a known percentile-to-rank anchor.
type RankRangePoint struct {
	Percentile float64 `json:"percentile" yaml:"percentile"`
	Rank       int     `json:"rank" yaml:"rank"`
}

// DefaultRankFallbackFactor scales (100 - percentile) into a rank below the
// lowest anchor.
const DefaultRankFallbackFactor = 12400.0

// RankEstimator interpolates ranks from percentile anchors.
type RankEstimator struct {
	anchors  []RankRangePoint
	fallback float64
}

// NewRankEstimator copies anchors, sorted by percentile descending.
func NewRankEstimator(anchors []RankRangePoint, fallbackFactor float64) (*RankEstimator, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("rank table is empty")
	}
	if fallbackFactor <= 0 {
		fallbackFactor = DefaultRankFallbackFactor
	}
	sorted := append([]RankRangePoint(nil), anchors...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Percentile > sorted[j].Percentile })
	return &RankEstimator{anchors: sorted, fallback: fallbackFactor}, nil
}

// Estimate returns the rank for a percentile. Rank falls as percentile
// rises; the result is never below 1.
func (e *RankEstimator) Estimate(percentile float64) int {
	if percentile >= 100 {
		return 1
	}
	var rank float64
	found := false
	for i := 0; i+1 < len(e.anchors); i++ {
		hi, lo := e.anchors[i], e.anchors[i+1]
		if percentile <= hi.Percentile && percentile >= lo.Percentile {
			if hi.Percentile == lo.Percentile {
				rank = float64(lo.Rank)
			} else {
				ratio := (percentile - lo.Percentile) / (hi.Percentile - lo.Percentile)
				rank = float64(lo.Rank) - ratio*float64(lo.Rank-hi.Rank)
			}
			found = true
			break
		}
	}
	if !found {
		if top := e.anchors[0]; percentile > top.Percentile {
			rank = float64(top.Rank)
		} else {
			rank = (100 - percentile) * e.fallback
		}
	}
	if r := int(rank); r >= 1 {
		return r
	}
	return 1
}
