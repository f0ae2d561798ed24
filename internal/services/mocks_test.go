package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"github.com/stretchr/testify/mock"
)

// MockAnswerKeyRepository is a mock implementation of AnswerKeyRepository
type MockAnswerKeyRepository struct {
	mock.Mock
}

func (m *MockAnswerKeyRepository) ReplaceAll(ctx context.Context, entries []*models.AnswerKeyEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockAnswerKeyRepository) List(ctx context.Context) ([]*models.AnswerKeyEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AnswerKeyEntry), args.Error(1)
}

func (m *MockAnswerKeyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubmissionRepository is a mock implementation of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Upsert(ctx context.Context, submission *models.ScoreSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByPhone(ctx context.Context, phone string) (*models.ScoreSubmission, error) {
	args := m.Called(ctx, phone)
	sub, _ := args.Get(0).(*models.ScoreSubmission)
	return sub, args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.ScoreSubmission, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.ScoreSubmission), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

// MockCacheService is a mock implementation of cache.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	if fill, ok := args.Get(0).(func(interface{})); ok {
		fill(dest)
		return nil
	}
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// MockFetcher is a mock implementation of document.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (scoring.Document, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(scoring.Document), args.Error(1)
}

// MockAnswerKeyService is a mock implementation of AnswerKeyService
type MockAnswerKeyService struct {
	mock.Mock
}

func (m *MockAnswerKeyService) Import(ctx context.Context, filename string, r io.Reader) (*models.ImportSummary, error) {
	args := m.Called(ctx, filename, r)
	summary, _ := args.Get(0).(*models.ImportSummary)
	return summary, args.Error(1)
}

func (m *MockAnswerKeyService) Current(ctx context.Context) (scoring.AnswerKey, error) {
	args := m.Called(ctx)
	key, _ := args.Get(0).(scoring.AnswerKey)
	return key, args.Error(1)
}

func (m *MockAnswerKeyService) List(ctx context.Context) ([]*models.AnswerKeyEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AnswerKeyEntry), args.Error(1)
}

func (m *MockAnswerKeyService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerKeyService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===== FIXTURES =====

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testSheet has one question per subject of testLayout: a correct MCQ, a
// wrong numeric answer and a skipped numeric answer.
func testSheet() scoring.Document {
	text := strings.Join([]string{
		"Q.1 Options 1. a 2. b 3. c 4. d Question Type : MCQ Question ID : 100 " +
			"Option 1 ID : 1001 Option 2 ID : 1002 Option 3 ID : 1003 Option 4 ID : 1004 " +
			"Status : Answered Chosen Option : 2",
		"Q.2 Given Answer : 42 Question Type : SA Question ID : 200 Status : Answered",
		"Q.3 Given Answer : -- Question Type : SA Question ID : 300 Status : Not Answered",
	}, " ")
	return scoring.Document{
		Text: "JEE Main Response Sheet " + text,
		Tables: []scoring.Table{{
			Text: "Application No 240310000001 Candidate Name Asha Verma",
			Rows: [][]string{
				{"Application No", "240310000001"},
				{"Candidate Name", "Asha Verma"},
				{"Roll No", "RJ01000001"},
				{"Test Date", "22/01/2025"},
				{"Test Time", "9:00 AM - 12:00 PM"},
			},
		}},
	}
}

func testKey() scoring.AnswerKey {
	return scoring.AnswerKey{"100": "1002", "200": "7", "300": "5"}
}

func testLayout() scoring.Layout {
	layout, err := scoring.ParseLayout("Mathematics:1,Physics:1,Chemistry:1")
	if err != nil {
		panic(fmt.Sprintf("test layout: %v", err))
	}
	return layout
}

func testEngine() *scoring.Engine {
	cfg := scoring.DefaultConfig()
	cfg.Layout = testLayout()
	engine, err := scoring.NewEngine(cfg)
	if err != nil {
		panic(fmt.Sprintf("test engine: %v", err))
	}
	return engine
}
