package scoring

import (
	"sort"
	"strconv"
	"strings"
)

// Marks awarded per question.
const (
	MarksCorrect     = 4
	MarksIncorrect   = -1
	MarksUnattempted = 0
)

// Rule decides the marks for a question or passes. Rules run in a fixed
// order and the first one that returns decided=true wins.
type Rule interface {
	Name() string
	Apply(rec ResponseRecord, key AnswerKey) (marks int, decided bool)
}

// RuleFunc adapts a function to Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(rec ResponseRecord, key AnswerKey) (int, bool)
}

func (r RuleFunc) Name() string { return r.RuleName }

func (r RuleFunc) Apply(rec ResponseRecord, key AnswerKey) (int, bool) {
	return r.Fn(rec, key)
}

// Overrides are corrections announced by the exam authority for specific
// question ids.
type Overrides struct {
	// Grace lists questions awarded full marks to every candidate.
	Grace []string
	// MultiCorrect maps a question id to every response id accepted as correct.
	MultiCorrect map[string][]string
}

// DefaultOverrides returns the corrections published for the current paper.
func DefaultOverrides() Overrides {
	return Overrides{
		Grace: []string{"444792191"},
		MultiCorrect: map[string][]string{
			"444792493": {"4447921684", "4447921686", "4447921687"},
		},
	}
}

// Calculator applies an ordered rule chain to response records.
type Calculator struct {
	rules []Rule
}

// NewCalculator builds the standard chain for the given overrides.
func NewCalculator(ov Overrides) *Calculator {
	return NewCalculatorWithRules(
		graceRule(ov.Grace),
		droppedRule(),
		multiCorrectRule(ov.MultiCorrect),
		unattemptedRule(),
		missingKeyRule(),
		shuffledOptionRule(),
		literalRule(),
	)
}

// NewCalculatorWithRules builds a calculator over an explicit chain.
func NewCalculatorWithRules(rules ...Rule) *Calculator {
	return &Calculator{rules: append([]Rule(nil), rules...)}
}

// Rules returns the rule names in evaluation order.
func (c *Calculator) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name()
	}
	return names
}

// Score runs the chain for one record. A record no rule decides scores 0.
func (c *Calculator) Score(rec ResponseRecord, key AnswerKey) ScoredRecord {
	rec.QuestionID = trim(rec.QuestionID)
	rec.Response = trim(rec.Response)
	if isUnattempted(rec.Response) {
		rec.Response = Unattempted
	}
	for _, r := range c.rules {
		if marks, ok := r.Apply(rec, key); ok {
			return ScoredRecord{ResponseRecord: rec, Marks: marks, Rule: r.Name()}
		}
	}
	return ScoredRecord{ResponseRecord: rec, Marks: MarksUnattempted, Rule: "none"}
}

// ScoreAll scores records in order.
func (c *Calculator) ScoreAll(records []ResponseRecord, key AnswerKey) []ScoredRecord {
	out := make([]ScoredRecord, len(records))
	for i, rec := range records {
		out[i] = c.Score(rec, key)
	}
	return out
}

func graceRule(ids []string) Rule {
	set := toSet(ids)
	return RuleFunc{RuleName: "grace", Fn: func(rec ResponseRecord, _ AnswerKey) (int, bool) {
		if _, ok := set[rec.QuestionID]; ok {
			return MarksCorrect, true
		}
		return 0, false
	}}
}

func droppedRule() Rule {
	return RuleFunc{RuleName: "dropped", Fn: func(rec ResponseRecord, key AnswerKey) (int, bool) {
		v, ok := key.Lookup(rec.QuestionID)
		if ok && strings.Contains(strings.ToLower(v), "dropped") {
			return MarksCorrect, true
		}
		return 0, false
	}}
}

func multiCorrectRule(accepted map[string][]string) Rule {
	sets := make(map[string]map[string]struct{}, len(accepted))
	for q, ids := range accepted {
		sets[trim(q)] = toSet(ids)
	}
	return RuleFunc{RuleName: "multi_correct", Fn: func(rec ResponseRecord, _ AnswerKey) (int, bool) {
		set, ok := sets[rec.QuestionID]
		if !ok {
			return 0, false
		}
		if rec.IsUnattempted() {
			return MarksUnattempted, true
		}
		if _, hit := set[rec.Response]; hit {
			return MarksCorrect, true
		}
		return MarksIncorrect, true
	}}
}

func unattemptedRule() Rule {
	return RuleFunc{RuleName: "unattempted", Fn: func(rec ResponseRecord, _ AnswerKey) (int, bool) {
		if rec.IsUnattempted() {
			return MarksUnattempted, true
		}
		return 0, false
	}}
}

func missingKeyRule() Rule {
	return RuleFunc{RuleName: "missing_key", Fn: func(rec ResponseRecord, key AnswerKey) (int, bool) {
		if _, ok := key.Lookup(rec.QuestionID); !ok {
			return MarksUnattempted, true
		}
		return 0, false
	}}
}

// shuffledOptionRule handles keys that name the correct option by its rank
// among the question's four option ids sorted ascending, since on-screen
// order differs per candidate.
func shuffledOptionRule() Rule {
	return RuleFunc{RuleName: "shuffled_option", Fn: func(rec ResponseRecord, key AnswerKey) (int, bool) {
		if rec.Kind != KindMCQ || len(rec.OptionIDs) != optionsPerQuestion {
			return 0, false
		}
		v, _ := key.Lookup(rec.QuestionID)
		correct, ok := ResolveShuffled(rec.OptionIDs, v)
		if !ok {
			return 0, false
		}
		if rec.Response == correct {
			return MarksCorrect, true
		}
		return MarksIncorrect, true
	}}
}

func literalRule() Rule {
	return RuleFunc{RuleName: "literal", Fn: func(rec ResponseRecord, key AnswerKey) (int, bool) {
		v, _ := key.Lookup(rec.QuestionID)
		if rec.Response == v {
			return MarksCorrect, true
		}
		return MarksIncorrect, true
	}}
}

// ResolveShuffled maps a 1-based rank position to the option id at that
// position once optionIDs are sorted in ascending numeric order. ok is false
// when position is not an integer within range.
func ResolveShuffled(optionIDs []string, position string) (string, bool) {
	pos, err := strconv.Atoi(trim(position))
	if err != nil || pos < 1 || pos > len(optionIDs) {
		return "", false
	}
	sorted := make([]string, len(optionIDs))
	for i, id := range optionIDs {
		sorted[i] = trim(id)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, errA := strconv.ParseInt(sorted[i], 10, 64)
		b, errB := strconv.ParseInt(sorted[j], 10, 64)
		if errA != nil || errB != nil {
			return sorted[i] < sorted[j]
		}
		return a < b
	})
	return sorted[pos-1], true
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[trim(id)] = struct{}{}
	}
	return set
}
