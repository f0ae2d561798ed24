package scoring

import "fmt"

// Config is everything the engine needs besides a request's own inputs.
type Config struct {
	Overrides Overrides
	Layout    Layout
	Tables    ReferenceTables
}

// DefaultConfig returns the built-in overrides, layout and tables.
func DefaultConfig() Config {
	return Config{
		Overrides: DefaultOverrides(),
		Layout:    DefaultLayout(),
		Tables:    DefaultReferenceTables(),
	}
}

// Engine runs the scoring pipeline: parse, mark, aggregate, estimate. It
// holds only read-only configuration and is safe for concurrent use.
type Engine struct {
	calc       *Calculator
	layout     Layout
	percentile *PercentileEstimator
	rank       *RankEstimator
}

// NewEngine validates cfg and builds an engine.
func NewEngine(cfg Config) (*Engine, error) {
	if len(cfg.Layout) == 0 {
		return nil, fmt.Errorf("subject layout is empty")
	}
	if err := cfg.Tables.Validate(); err != nil {
		return nil, err
	}
	pe, err := NewPercentileEstimator(cfg.Tables.Percentile)
	if err != nil {
		return nil, err
	}
	re, err := NewRankEstimator(cfg.Tables.Rank, cfg.Tables.RankFallback)
	if err != nil {
		return nil, err
	}
	return &Engine{
		calc:       NewCalculator(cfg.Overrides),
		layout:     append(Layout(nil), cfg.Layout...),
		percentile: pe,
		rank:       re,
	}, nil
}

// Layout returns the subject layout the engine aggregates with.
func (e *Engine) Layout() Layout { return append(Layout(nil), e.layout...) }

// Score grades a flattened response sheet against key. It fails with
// ErrInvalidLevel before doing any work, and with ErrNoQuestions when the
// document holds no question blocks.
func (e *Engine) Score(doc Document, key AnswerKey, level int) (*Report, error) {
	if err := ValidateLevel(level); err != nil {
		return nil, err
	}

	records := ParseResponses(doc.Text)
	if len(records) == 0 {
		return nil, ErrNoQuestions
	}

	scored := e.calc.ScoreAll(records, key)
	subjects, total := Aggregate(scored, e.layout)

	pct, rank, err := e.Estimate(level, float64(total.Score))
	if err != nil {
		return nil, err
	}

	return &Report{
		Candidate:   ParseCandidateInfo(doc.Tables),
		PerQuestion: scored,
		Subjects:    subjects,
		Total:       total,
		Level:       level,
		Percentile:  pct,
		Rank:        rank,
	}, nil
}

// Estimate maps total marks at a level to a percentile and rank.
func (e *Engine) Estimate(level int, marks float64) (float64, int, error) {
	pct, err := e.percentile.Estimate(level, marks)
	if err != nil {
		return 0, 0, err
	}
	return pct, e.rank.Estimate(pct), nil
}

// ValidateLevel rejects levels outside MinLevel..MaxLevel.
func ValidateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidLevel, level, MinLevel, MaxLevel)
	}
	return nil
}
