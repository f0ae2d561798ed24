package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of score events
type EventType string

const (
	EventReportScored      EventType = "report.scored"
	EventAnswerKeyImported EventType = "answer_key.imported"
)

const (
	eventSource  = "scorecard-service"
	eventVersion = "1.0"
)

// ScoreEvent is the envelope for every published event
type ScoreEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ReportScoredEvent struct {
	Phone         string         `json:"phone"`
	CandidateName string         `json:"candidate_name"`
	Level         int            `json:"level"`
	Total         int            `json:"total"`
	Subjects      map[string]int `json:"subjects"`
	Percentile    float64        `json:"percentile"`
	Rank          int            `json:"rank"`
	ScoredAt      time.Time      `json:"scored_at"`
}

type AnswerKeyImportedEvent struct {
	Filename   string    `json:"filename"`
	Entries    int       `json:"entries"`
	ImportedAt time.Time `json:"imported_at"`
}

func NewReportScoredEvent(data ReportScoredEvent) *ScoreEvent {
	return newEvent(EventReportScored, data)
}

func NewAnswerKeyImportedEvent(filename string, entries int) *ScoreEvent {
	return newEvent(EventAnswerKeyImported, AnswerKeyImportedEvent{
		Filename:   filename,
		Entries:    entries,
		ImportedAt: time.Now(),
	})
}

func newEvent(t EventType, data interface{}) *ScoreEvent {
	return &ScoreEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}
