package postgres

import (
	"context"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"gorm.io/gorm"
)

type AnswerKeyPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerKeyPostgreSQL(db *gorm.DB) repositories.AnswerKeyRepository {
	return &AnswerKeyPostgreSQL{db: db}
}

func (a AnswerKeyPostgreSQL) ReplaceAll(ctx context.Context, entries []*models.AnswerKeyEntry) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.AnswerKeyEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.CreateInBatches(entries, 200).Error
	})
}

func (a AnswerKeyPostgreSQL) List(ctx context.Context) ([]*models.AnswerKeyEntry, error) {
	var entries []*models.AnswerKeyEntry
	if err := a.db.WithContext(ctx).Order("question_id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (a AnswerKeyPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := a.db.WithContext(ctx).Model(&models.AnswerKeyEntry{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
