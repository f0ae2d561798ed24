package scoring

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReferenceTables bundles the anchors both estimators interpolate over.
type ReferenceTables struct {
	Percentile   map[int][]ReferencePoint `yaml:"percentile"`
	Rank         []RankRangePoint         `yaml:"rank"`
	RankFallback float64                  `yaml:"rank_fallback_factor"`
}

// DefaultReferenceTables returns a fresh copy of the built-in anchors.
func DefaultReferenceTables() ReferenceTables {
	return ReferenceTables{
		Percentile: map[int][]ReferencePoint{
			1: shiftTable(250, 202, 170, 140, 120, 100, 80, 60, 40, 20),
			2: shiftTable(255, 210, 178, 148, 126, 106, 85, 64, 43, 22),
			3: shiftTable(260, 216, 184, 153, 131, 110, 89, 67, 45, 23),
			4: shiftTable(265, 222, 190, 158, 136, 114, 92, 70, 47, 24),
			5: shiftTable(270, 228, 196, 164, 141, 118, 96, 73, 49, 25),
		},
		Rank: []RankRangePoint{
			{Percentile: 100, Rank: 1},
			{Percentile: 99.99, Rank: 120},
			{Percentile: 99.9, Rank: 1250},
			{Percentile: 99.5, Rank: 6000},
			{Percentile: 99.0, Rank: 12500},
			{Percentile: 98.0, Rank: 25000},
			{Percentile: 97.0, Rank: 37000},
			{Percentile: 95.0, Rank: 62000},
			{Percentile: 90.0, Rank: 125000},
			{Percentile: 80.0, Rank: 250000},
			{Percentile: 70.0, Rank: 375000},
			{Percentile: 50.0, Rank: 620000},
		},
		RankFallback: DefaultRankFallbackFactor,
	}
}

// Every shift shares the percentile ladder; only the marks needed to reach
// each rung differ.
var percentileLadder = []float64{99.99, 99.9, 99.5, 99.0, 98.0, 96.5, 93.5, 87.0, 72.0, 45.0}

func shiftTable(marks ...float64) []ReferencePoint {
	points := make([]ReferencePoint, len(marks))
	for i, m := range marks {
		points[i] = ReferencePoint{Marks: m, Percentile: percentileLadder[i]}
	}
	return points
}

// LoadReferenceTables decodes tables from YAML. Sections and percentile
// levels missing from the document keep their built-in values.
func LoadReferenceTables(r io.Reader) (ReferenceTables, error) {
	var doc ReferenceTables
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return ReferenceTables{}, fmt.Errorf("decode reference tables: %w", err)
	}
	def := DefaultReferenceTables()
	if doc.Percentile == nil {
		doc.Percentile = make(map[int][]ReferencePoint, len(def.Percentile))
	}
	for level, points := range def.Percentile {
		if len(doc.Percentile[level]) == 0 {
			doc.Percentile[level] = points
		}
	}
	if len(doc.Rank) == 0 {
		doc.Rank = def.Rank
	}
	if doc.RankFallback <= 0 {
		doc.RankFallback = def.RankFallback
	}
	return doc, nil
}

// LoadReferenceTablesFile reads tables from path, or returns the defaults
// when path is empty.
func LoadReferenceTablesFile(path string) (ReferenceTables, error) {
	if path == "" {
		return DefaultReferenceTables(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ReferenceTables{}, fmt.Errorf("open reference tables: %w", err)
	}
	defer f.Close()
	return LoadReferenceTables(f)
}

// Validate reports a level in MinLevel..MaxLevel without percentile anchors.
func (t ReferenceTables) Validate() error {
	for level := MinLevel; level <= MaxLevel; level++ {
		if len(t.Percentile[level]) == 0 {
			return fmt.Errorf("percentile table for level %d is missing", level)
		}
	}
	return nil
}
