package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type SubmissionFilters struct {
	Level     *int   `json:"level"`
	MinTotal  *int   `json:"min_total"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "created_at", "total_score", "percentile", "phone"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

// AnswerKeyRepository stores the single current answer key
type AnswerKeyRepository interface {
	// ReplaceAll swaps the stored key for entries atomically
	ReplaceAll(ctx context.Context, entries []*models.AnswerKeyEntry) error
	List(ctx context.Context) ([]*models.AnswerKeyEntry, error)
	Count(ctx context.Context) (int64, error)
}

// SubmissionRepository stores one scored result per phone number
type SubmissionRepository interface {
	// Upsert inserts or replaces the submission with the same phone
	Upsert(ctx context.Context, submission *models.ScoreSubmission) error
	GetByPhone(ctx context.Context, phone string) (*models.ScoreSubmission, error)
	List(ctx context.Context, filters SubmissionFilters) ([]*models.ScoreSubmission, int64, error)
	Delete(ctx context.Context, phone string) error
}

// IsNotFoundError reports whether err means the record does not exist
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
