package scoring

// QuestionKind distinguishes option-based questions from numeric-entry ones.
type QuestionKind string

const (
	KindMCQ     QuestionKind = "MCQ"
	KindNumeric QuestionKind = "SA"
)

// Unattempted is the normalized response for a question the candidate left
// blank, whether the sheet shows "Not Answered" or a "--" placeholder.
const Unattempted = "Not Answered"

// Unknown fills candidate fields that the response sheet does not carry.
const Unknown = "N/A"

// ResponseRecord is one question as read from the response sheet.
type ResponseRecord struct {
	QuestionID string       `json:"question_id"`
	Kind       QuestionKind `json:"question_kind"`
	Response   string       `json:"response"`

	// OptionIDs holds the four option identifiers in on-screen order
	// (Option 1 ID .. Option 4 ID). Empty for numeric questions and for
	// unattempted MCQs.
	OptionIDs []string `json:"option_ids,omitempty"`
}

// IsUnattempted reports whether the candidate left the question blank.
func (r ResponseRecord) IsUnattempted() bool {
	return isUnattempted(r.Response)
}

// ScoredRecord is a ResponseRecord with the marks it earned and the name of
// the rule that decided them.
type ScoredRecord struct {
	ResponseRecord
	Marks int    `json:"marks"`
	Rule  string `json:"rule"`
}

// AnswerKey maps a question id to its correct-value descriptor.
type AnswerKey map[string]string

// Lookup returns the trimmed key value for a question.
func (k AnswerKey) Lookup(questionID string) (string, bool) {
	v, ok := k[questionID]
	if !ok {
		return "", false
	}
	return trim(v), true
}

// CandidateInfo is the identity block printed at the top of a response sheet.
type CandidateInfo struct {
	Name          string `json:"name"`
	ApplicationNo string `json:"application_no"`
	RollNo        string `json:"roll_no"`
	TestDate      string `json:"test_date"`
	TestTime      string `json:"test_time"`
}

// Table is a flattened HTML table: its whole text and the text of each cell.
type Table struct {
	Text string
	Rows [][]string
}

// Document is a response sheet after markup has been flattened.
type Document struct {
	Text   string
	Tables []Table
}

// SectionStats summarises a run of scored records.
type SectionStats struct {
	Score       int `json:"score"`
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	Unattempted int `json:"unattempted"`
}

// SubjectScore is SectionStats for one named subject.
type SubjectScore struct {
	Subject string `json:"subject"`
	SectionStats
}

// Report is the full result of scoring one response sheet.
type Report struct {
	Candidate   CandidateInfo  `json:"candidate_info"`
	PerQuestion []ScoredRecord `json:"per_question"`
	Subjects    []SubjectScore `json:"subject_stats"`
	Total       SectionStats   `json:"total"`
	Level       int            `json:"level"`
	Percentile  float64        `json:"percentile"`
	Rank        int            `json:"rank"`
}

// Subject returns the stats for a subject by name.
func (r *Report) Subject(name string) (SubjectScore, bool) {
	for _, s := range r.Subjects {
		if s.Subject == name {
			return s, true
		}
	}
	return SubjectScore{}, false
}
