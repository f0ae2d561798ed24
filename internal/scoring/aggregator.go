package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// Subject is a named, positional run of questions: records [Start, End).
type Subject struct {
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// Layout lists subjects in paper order.
type Layout []Subject

// DefaultLayout is the 75-question paper: 25 Mathematics, 25 Physics,
// 25 Chemistry.
func DefaultLayout() Layout {
	return Layout{
		{Name: "Mathematics", Start: 0, End: 25},
		{Name: "Physics", Start: 25, End: 50},
		{Name: "Chemistry", Start: 50, End: 75},
	}
}

// ParseLayout reads "Name:count,Name:count,..." into consecutive subjects.
func ParseLayout(spec string) (Layout, error) {
	var layout Layout
	start := 0
	for _, part := range strings.Split(spec, ",") {
		part = trim(part)
		if part == "" {
			continue
		}
		name, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("subject %q: expected name:count", part)
		}
		n, err := strconv.Atoi(trim(count))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("subject %q: invalid question count", part)
		}
		layout = append(layout, Subject{Name: trim(name), Start: start, End: start + n})
		start += n
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("subject layout %q is empty", spec)
	}
	return layout, nil
}

// Size is the number of questions the layout covers.
func (l Layout) Size() int {
	size := 0
	for _, s := range l {
		if s.End > size {
			size = s.End
		}
	}
	return size
}

// Aggregate folds scored records into per-subject stats and a total. Subject
// ranges are clipped to the records available; records past the layout are
// ignored.
func Aggregate(records []ScoredRecord, layout Layout) ([]SubjectScore, SectionStats) {
	subjects := make([]SubjectScore, 0, len(layout))
	var total SectionStats
	for _, s := range layout {
		stats := Tally(clip(records, s.Start, s.End))
		subjects = append(subjects, SubjectScore{Subject: s.Name, SectionStats: stats})
		total.Score += stats.Score
		total.Correct += stats.Correct
		total.Incorrect += stats.Incorrect
		total.Unattempted += stats.Unattempted
	}
	return subjects, total
}

// Tally computes SectionStats over a run of records.
func Tally(records []ScoredRecord) SectionStats {
	var st SectionStats
	for _, r := range records {
		st.Score += r.Marks
		switch r.Marks {
		case MarksCorrect:
			st.Correct++
		case MarksIncorrect:
			st.Incorrect++
		}
		if r.IsUnattempted() {
			st.Unattempted++
		}
	}
	return st
}

func clip(records []ScoredRecord, start, end int) []ScoredRecord {
	if start < 0 {
		start = 0
	}
	if end > len(records) {
		end = len(records)
	}
	if start >= end {
		return nil
	}
	return records[start:end]
}
