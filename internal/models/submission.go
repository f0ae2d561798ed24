package models

import (
	"time"

	"gorm.io/datatypes"
)

// ScoreSubmission is the stored result for one candidate, keyed by the phone
// number they submitted with. Re-submitting replaces the previous result.
type ScoreSubmission struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Phone string `json:"phone" gorm:"not null;size:20;uniqueIndex"`

	// Candidate block from the response sheet
	CandidateName string `json:"candidate_name" gorm:"size:200"`
	ApplicationNo string `json:"application_no" gorm:"size:50;index"`
	RollNo        string `json:"roll_no" gorm:"size:50"`
	TestDate      string `json:"test_date" gorm:"size:50"`
	TestTime      string `json:"test_time" gorm:"size:50"`

	// Result
	Level      int            `json:"level" gorm:"not null"`
	TotalScore int            `json:"total_score" gorm:"not null;index"`
	Correct    int            `json:"correct"`
	Incorrect  int            `json:"incorrect"`
	Unanswered int            `json:"unanswered"`
	Percentile float64        `json:"percentile"`
	Rank       int            `json:"rank"`
	Subjects   datatypes.JSON `json:"subjects" gorm:"type:jsonb"`  // []scoring.SubjectScore
	Responses  datatypes.JSON `json:"responses" gorm:"type:jsonb"` // []scoring.ScoredRecord

	SourceURL string    `json:"source_url" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScoreSubmission) TableName() string { return "score_submissions" }
