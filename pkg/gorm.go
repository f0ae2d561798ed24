package pkg

import (
	"fmt"

	"github.com/SAP-F-2025/scorecard-service/internal/config"
	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDatabase connects to postgres and migrates the score tables
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Error
	if cfg.Environment == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.AnswerKeyEntry{}, &models.ScoreSubmission{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
