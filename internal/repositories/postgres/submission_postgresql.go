package postgres

import (
	"context"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var submissionSortColumns = []string{"created_at", "updated_at", "total_score", "percentile", "phone"}

type SubmissionPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewSubmissionPostgreSQL(db *gorm.DB) repositories.SubmissionRepository {
	return &SubmissionPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

// Upsert replaces every result column of an existing row with the same phone
func (s SubmissionPostgreSQL) Upsert(ctx context.Context, submission *models.ScoreSubmission) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"candidate_name", "application_no", "roll_no", "test_date", "test_time",
			"level", "total_score", "correct", "incorrect", "unanswered",
			"percentile", "rank", "subjects", "responses", "source_url", "updated_at",
		}),
	}).Create(submission).Error
}

func (s SubmissionPostgreSQL) GetByPhone(ctx context.Context, phone string) (*models.ScoreSubmission, error) {
	var submission models.ScoreSubmission
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s SubmissionPostgreSQL) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.ScoreSubmission, int64, error) {
	var submissions []*models.ScoreSubmission
	var total int64

	// apply filter first
	query := s.db.WithContext(ctx).Model(&models.ScoreSubmission{})
	query = s.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = s.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder,
		filters.Limit, filters.Offset, submissionSortColumns...)

	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (s SubmissionPostgreSQL) Delete(ctx context.Context, phone string) error {
	res := s.db.WithContext(ctx).Where("phone = ?", phone).Delete(&models.ScoreSubmission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s SubmissionPostgreSQL) applyFilters(query *gorm.DB, filters repositories.SubmissionFilters) *gorm.DB {
	if filters.Level != nil {
		query = query.Where("level = ?", *filters.Level)
	}
	if filters.MinTotal != nil {
		query = query.Where("total_score >= ?", *filters.MinTotal)
	}
	return query
}
