package models

import "time"

// AnswerKeyEntry is one row of the official answer key.
type AnswerKeyEntry struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	QuestionID   string    `json:"question_id" gorm:"not null;size:32;uniqueIndex" validate:"required,numeric,max=32"`
	CorrectValue string    `json:"correct_value" gorm:"not null;size:128" validate:"required,max=128"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (AnswerKeyEntry) TableName() string { return "answer_key_entries" }
