package scoring

import (
	"fmt"
	"sort"
)

// Exam levels (testing shifts) with a percentile table of their own.
const (
	MinLevel = 1
	MaxLevel = 5
)

const (
	// MaxMarks is the best possible total on the 75-question paper.
	MaxMarks = 300.0
	// percentileCeiling is the value extrapolation reaches at MaxMarks.
	percentileCeiling = 99.999
	// percentileCap bounds every estimate from above.
	percentileCap = 99.9999
)

// ReferencePoint is a known marks-to-percentile anchor.
type ReferencePoint struct {
	Marks      float64 `json:"marks" yaml:"marks"`
	Percentile float64 `json:"percentile" yaml:"percentile"`
}

// PercentileEstimator interpolates percentiles from per-level anchors. It
// holds its own sorted copy of the tables and never mutates them.
type PercentileEstimator struct {
	levels map[int][]ReferencePoint
}

// NewPercentileEstimator copies tables and sorts each level by marks,
// highest first.
func NewPercentileEstimator(tables map[int][]ReferencePoint) (*PercentileEstimator, error) {
	levels := make(map[int][]ReferencePoint, len(tables))
	for level, points := range tables {
		if level < MinLevel || level > MaxLevel {
			return nil, fmt.Errorf("%w: table for level %d", ErrInvalidLevel, level)
		}
		if len(points) == 0 {
			return nil, fmt.Errorf("percentile table for level %d is empty", level)
		}
		sorted := append([]ReferencePoint(nil), points...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Marks > sorted[j].Marks })
		levels[level] = sorted
	}
	return &PercentileEstimator{levels: levels}, nil
}

// Estimate returns the percentile for total marks at a level.
func (e *PercentileEstimator) Estimate(level int, marks float64) (float64, error) {
	points, ok := e.levels[level]
	if !ok {
		return 0, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidLevel, level, MinLevel, MaxLevel)
	}
	return clampPercentile(interpolatePercentile(points, marks)), nil
}

func interpolatePercentile(points []ReferencePoint, marks float64) float64 {
	top := points[0]
	if marks >= top.Marks {
		if top.Marks >= MaxMarks {
			return percentileCeiling
		}
		slope := (percentileCeiling - top.Percentile) / (MaxMarks - top.Marks)
		return top.Percentile + (marks-top.Marks)*slope
	}

	for i := 0; i+1 < len(points); i++ {
		hi, lo := points[i], points[i+1]
		if marks <= hi.Marks && marks >= lo.Marks {
			if hi.Marks == lo.Marks {
				return lo.Percentile
			}
			ratio := (marks - lo.Marks) / (hi.Marks - lo.Marks)
			return lo.Percentile + ratio*(hi.Percentile-lo.Percentile)
		}
	}

	low := points[len(points)-1]
	if low.Marks <= 0 {
		return 0
	}
	return marks * low.Percentile / low.Marks
}

func clampPercentile(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > percentileCap {
		return percentileCap
	}
	return p
}
