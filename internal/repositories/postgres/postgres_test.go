package postgres

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AnswerKeyEntry{}, &models.ScoreSubmission{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestAnswerKeyPostgreSQL_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewAnswerKeyPostgreSQL(newTestDB(t))

	require.NoError(t, repo.ReplaceAll(ctx, []*models.AnswerKeyEntry{
		{QuestionID: "2", CorrectValue: "20"},
		{QuestionID: "1", CorrectValue: "10"},
	}))
	require.NoError(t, repo.ReplaceAll(ctx, []*models.AnswerKeyEntry{
		{QuestionID: "3", CorrectValue: "30"},
	}))

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "3", entries[0].QuestionID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestAnswerKeyPostgreSQL_ReplaceAllRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewAnswerKeyPostgreSQL(newTestDB(t))
	require.NoError(t, repo.ReplaceAll(ctx, []*models.AnswerKeyEntry{{QuestionID: "1", CorrectValue: "10"}}))

	err := repo.ReplaceAll(ctx, []*models.AnswerKeyEntry{
		{QuestionID: "5", CorrectValue: "50"},
		{QuestionID: "5", CorrectValue: "51"},
	})
	require.Error(t, err)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].QuestionID)
}

func TestSubmissionPostgreSQL_UpsertByPhone(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionPostgreSQL(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, &models.ScoreSubmission{
		Phone: "9876543210", CandidateName: "A", Level: 1, TotalScore: 100,
		Subjects: datatypes.JSON(`[]`), Responses: datatypes.JSON(`[]`),
	}))
	require.NoError(t, repo.Upsert(ctx, &models.ScoreSubmission{
		Phone: "9876543210", CandidateName: "A", Level: 2, TotalScore: 230, Rank: 590,
		Subjects: datatypes.JSON(`[{"subject":"Physics"}]`), Responses: datatypes.JSON(`[]`),
	}))

	got, err := repo.GetByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, 230, got.TotalScore)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 590, got.Rank)
	assert.JSONEq(t, `[{"subject":"Physics"}]`, string(got.Subjects))

	_, total, err := repo.List(ctx, repositories.SubmissionFilters{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, err = repo.GetByPhone(ctx, "0000000000")
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestSubmissionPostgreSQL_ListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionPostgreSQL(newTestDB(t))

	for i, total := range []int{120, 230, 80} {
		require.NoError(t, repo.Upsert(ctx, &models.ScoreSubmission{
			Phone:      []string{"1111111111", "2222222222", "3333333333"}[i],
			Level:      1 + i%2,
			TotalScore: total,
			Subjects:   datatypes.JSON(`[]`),
			Responses:  datatypes.JSON(`[]`),
		}))
	}

	minTotal := 100
	got, total, err := repo.List(ctx, repositories.SubmissionFilters{MinTotal: &minTotal, SortBy: "total_score", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, 120, got[0].TotalScore)
	assert.Equal(t, 230, got[1].TotalScore)

	level := 1
	got, total, err = repo.List(ctx, repositories.SubmissionFilters{Level: &level, SortBy: "total_score; drop table x"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, got, 2)

	got, _, err = repo.List(ctx, repositories.SubmissionFilters{Limit: 1, SortBy: "total_score"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 230, got[0].TotalScore)
}

func TestSubmissionPostgreSQL_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionPostgreSQL(newTestDB(t))
	require.NoError(t, repo.Upsert(ctx, &models.ScoreSubmission{
		Phone: "9876543210", Subjects: datatypes.JSON(`[]`), Responses: datatypes.JSON(`[]`),
	}))

	require.NoError(t, repo.Delete(ctx, "9876543210"))
	assert.True(t, repositories.IsNotFoundError(repo.Delete(ctx, "9876543210")))
}
