package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mcq(qid, response string, options ...string) ResponseRecord {
	return ResponseRecord{QuestionID: qid, Kind: KindMCQ, Response: response, OptionIDs: options}
}

func numeric(qid, response string) ResponseRecord {
	return ResponseRecord{QuestionID: qid, Kind: KindNumeric, Response: response}
}

func TestCalculator_Score(t *testing.T) {
	calc := NewCalculator(DefaultOverrides())
	key := AnswerKey{
		"100": "4447921001",
		"101": "Dropped",
		"102": " dropped (bonus) ",
		"103": "3",
		"104": "5",
		"105": "52",
		"106": " 42 ",
		"107": "0123",
		"108": "3",
	}

	tests := []struct {
		name  string
		rec   ResponseRecord
		marks int
		rule  string
	}{
		{"literal match", mcq("100", "4447921001"), MarksCorrect, "literal"},
		{"literal mismatch", mcq("100", "4447921002"), MarksIncorrect, "literal"},
		{"unattempted", mcq("100", Unattempted), MarksUnattempted, "unattempted"},
		{"dash placeholder is unattempted", numeric("106", "--"), MarksUnattempted, "unattempted"},
		{"dropped with response", mcq("101", "999"), MarksCorrect, "dropped"},
		{"dropped without response", mcq("101", Unattempted), MarksCorrect, "dropped"},
		{"dropped marker is case insensitive substring", numeric("102", Unattempted), MarksCorrect, "dropped"},
		{"missing key", mcq("555", "1"), MarksUnattempted, "missing_key"},
		{"shuffled match", mcq("103", "55", "55", "52", "58", "54"), MarksCorrect, "shuffled_option"},
		{"shuffled mismatch", mcq("103", "52", "55", "52", "58", "54"), MarksIncorrect, "shuffled_option"},
		{"shuffled position out of range falls through", mcq("104", "5", "55", "52", "58", "54"), MarksCorrect, "literal"},
		{"non position key compared literally", mcq("105", "52", "55", "52", "58", "54"), MarksCorrect, "literal"},
		{"numeric key trimmed", numeric("106", "42"), MarksCorrect, "literal"},
		{"identifiers compared as strings", numeric("107", "123"), MarksIncorrect, "literal"},
		{"numeric answer never uses shuffled rule", numeric("108", "3"), MarksCorrect, "literal"},
		{"grace question with wrong answer", mcq("444792191", "1"), MarksCorrect, "grace"},
		{"grace question unattempted", mcq("444792191", Unattempted), MarksCorrect, "grace"},
		{"multi correct first", mcq("444792493", "4447921684"), MarksCorrect, "multi_correct"},
		{"multi correct third", mcq("444792493", "4447921687"), MarksCorrect, "multi_correct"},
		{"multi correct other", mcq("444792493", "4447921685"), MarksIncorrect, "multi_correct"},
		{"multi correct unattempted", mcq("444792493", Unattempted), MarksUnattempted, "multi_correct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Score(tt.rec, key)
			assert.Equal(t, tt.marks, got.Marks)
			assert.Equal(t, tt.rule, got.Rule)
		})
	}
}

func TestResolveShuffled(t *testing.T) {
	options := []string{"55", "52", "58", "54"}

	got, ok := ResolveShuffled(options, "3")
	assert.True(t, ok)
	assert.Equal(t, "55", got)

	got, ok = ResolveShuffled(options, " 1 ")
	assert.True(t, ok)
	assert.Equal(t, "52", got)

	// sorting is numeric, not lexical
	got, ok = ResolveShuffled([]string{"100", "99", "1000", "9"}, "2")
	assert.True(t, ok)
	assert.Equal(t, "99", got)

	for _, bad := range []string{"0", "5", "-1", "x", "", "4447921684"} {
		_, ok := ResolveShuffled(options, bad)
		assert.False(t, ok, "position %q", bad)
	}

	assert.Equal(t, []string{"55", "52", "58", "54"}, options, "input must not be reordered")
}

func TestCalculator_RuleOrder(t *testing.T) {
	calc := NewCalculator(DefaultOverrides())
	assert.Equal(t, []string{
		"grace", "dropped", "multi_correct", "unattempted", "missing_key", "shuffled_option", "literal",
	}, calc.Rules())

	// a dropped multi-correct question credits everyone
	key := AnswerKey{"444792493": "DROPPED"}
	assert.Equal(t, MarksCorrect, calc.Score(mcq("444792493", "1"), key).Marks)
}

func TestCalculator_CustomRules(t *testing.T) {
	bonus := RuleFunc{RuleName: "bonus", Fn: func(rec ResponseRecord, _ AnswerKey) (int, bool) {
		return 2, rec.QuestionID == "7"
	}}
	calc := NewCalculatorWithRules(bonus, literalRule())

	assert.Equal(t, 2, calc.Score(numeric("7", "x"), AnswerKey{"7": "y"}).Marks)
	assert.Equal(t, MarksIncorrect, calc.Score(numeric("8", "x"), AnswerKey{"8": "y"}).Marks)

	empty := NewCalculatorWithRules()
	got := empty.Score(numeric("8", "x"), AnswerKey{})
	assert.Equal(t, MarksUnattempted, got.Marks)
	assert.Equal(t, "none", got.Rule)
}

func TestCalculator_ScoreAll(t *testing.T) {
	calc := NewCalculator(Overrides{})
	key := AnswerKey{"1": "a", "2": "b"}
	got := calc.ScoreAll([]ResponseRecord{numeric("1", "a"), numeric("2", "c"), numeric("3", "")}, key)

	assert.Len(t, got, 3)
	assert.Equal(t, []int{4, -1, 0}, []int{got[0].Marks, got[1].Marks, got[2].Marks})
	assert.Equal(t, Unattempted, got[2].Response)
}
