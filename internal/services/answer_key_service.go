package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/cache"
	"github.com/SAP-F-2025/scorecard-service/internal/events"
	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"github.com/SAP-F-2025/scorecard-service/internal/validator"
	"github.com/xuri/excelize/v2"
)

const (
	answerKeyCacheKey     = "answer_key:current"
	answerKeyCachePattern = "answer_key:*"

	questionIDHeader    = "question id"
	correctAnswerHeader = "correct response id"
)

// AnswerKeyService owns the official answer key
type AnswerKeyService interface {
	// Import replaces the stored key with the rows of an .xlsx or .csv file
	Import(ctx context.Context, filename string, r io.Reader) (*models.ImportSummary, error)
	// Current returns the key in the form the scoring engine consumes
	Current(ctx context.Context) (scoring.AnswerKey, error)
	List(ctx context.Context) ([]*models.AnswerKeyEntry, error)
	// Count returns the number of questions in the stored key
	Count(ctx context.Context) (int64, error)
	// Clear withdraws the stored key; scoring fails with ErrAnswerKeyEmpty
	// until the next import.
	Clear(ctx context.Context) error
}

type answerKeyService struct {
	repo      repositories.AnswerKeyRepository
	cache     cache.CacheService
	cacheTTL  time.Duration
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *ServiceLogger
}

func NewAnswerKeyService(
	repo repositories.AnswerKeyRepository,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
) AnswerKeyService {
	return &answerKeyService{
		repo:      repo,
		cache:     cacheService,
		cacheTTL:  cacheTTL,
		validator: v,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "scorecard-service", Component: "answer_key"}),
	}
}

func (s *answerKeyService) Import(ctx context.Context, filename string, r io.Reader) (summary *models.ImportSummary, err error) {
	op := s.logger.WithOperation(ctx, "import_answer_key", "")
	start := time.Now()
	defer func() {
		attrs := []slog.Attr{slog.String("filename", filename)}
		if summary != nil {
			attrs = append(attrs, slog.Int("imported_rows", summary.ImportedRows))
		}
		op.LogResult(err, attrs...)
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	rows, err := readRows(filename, data)
	if err != nil {
		return nil, err
	}

	entries, summary, err := parseAnswerKeyRows(rows)
	if err != nil {
		return nil, err
	}
	summary.Filename = filename

	if errs := s.validator.AnswerKey().Validate(entries); len(errs) > 0 {
		return nil, errs
	}

	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to store answer key: %w", err)
	}

	if err := s.cache.DeletePattern(ctx, answerKeyCachePattern); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to invalidate answer key cache", "error", err)
	}

	if err := s.publisher.Publish(ctx, events.NewAnswerKeyImportedEvent(filename, len(entries))); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to publish answer key event", "error", err)
	}

	summary.ProcessingTime = time.Since(start)
	return summary, nil
}

func (s *answerKeyService) Current(ctx context.Context) (scoring.AnswerKey, error) {
	var key scoring.AnswerKey
	err := s.cache.Get(ctx, answerKeyCacheKey, &key)
	if err == nil && len(key) > 0 {
		return key, nil
	}
	if err != nil && !cache.IsCacheMiss(err) {
		s.logger.logger.WarnContext(ctx, "Answer key cache read failed", "error", err)
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer key: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrAnswerKeyEmpty
	}

	key = make(scoring.AnswerKey, len(entries))
	for _, e := range entries {
		key[e.QuestionID] = e.CorrectValue
	}

	if err := s.cache.Set(ctx, answerKeyCacheKey, key, s.cacheTTL); err != nil {
		s.logger.logger.WarnContext(ctx, "Answer key cache write failed", "error", err)
	}
	return key, nil
}

func (s *answerKeyService) List(ctx context.Context) ([]*models.AnswerKeyEntry, error) {
	return s.repo.List(ctx)
}

func (s *answerKeyService) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count answer key entries: %w", err)
	}
	return count, nil
}

func (s *answerKeyService) Clear(ctx context.Context) (err error) {
	op := s.logger.WithOperation(ctx, "clear_answer_key", "")
	defer func() { op.LogResult(err) }()

	if err := s.repo.ReplaceAll(ctx, nil); err != nil {
		return fmt.Errorf("failed to clear answer key: %w", err)
	}
	if err := s.cache.Delete(ctx, answerKeyCacheKey); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to invalidate answer key cache", "error", err)
	}
	return nil
}

// readRows returns the rows of the first sheet of an .xlsx file or of a .csv
func readRows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, NewValidationError("file", "could not open Excel file", err.Error())
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, NewValidationError("file", "Excel file has no sheets", nil)
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read Excel rows: %w", err)
		}
		return rows, nil
	case ".csv":
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, NewValidationError("file", "could not parse CSV file", err.Error())
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedFileFormat
	}
}

// parseAnswerKeyRows maps header names case-insensitively, skips rows with a
// blank question id and keeps the last row for a repeated id.
func parseAnswerKeyRows(rows [][]string) ([]*models.AnswerKeyEntry, *models.ImportSummary, error) {
	if len(rows) == 0 {
		return nil, nil, ErrAnswerKeyColumns
	}

	headerMap := make(map[string]int)
	for i, header := range rows[0] {
		headerMap[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF")))] = i
	}
	qidCol, ok1 := headerMap[questionIDHeader]
	valCol, ok2 := headerMap[correctAnswerHeader]
	if !ok1 || !ok2 {
		return nil, nil, ErrAnswerKeyColumns
	}

	summary := &models.ImportSummary{TotalRows: len(rows) - 1}
	index := make(map[string]int)
	var entries []*models.AnswerKeyEntry

	for i, row := range rows[1:] {
		rowNum := i + 2
		qid := cell(row, qidCol)
		if qid == "" {
			summary.SkippedRows++
			continue
		}
		value := cell(row, valCol)
		if value == "" {
			summary.SkippedRows++
			summary.Errors = append(summary.Errors, models.ImportValidationError{
				Row:     rowNum,
				Field:   "Correct Response ID",
				Message: "is required",
				Value:   qid,
			})
			continue
		}

		if at, seen := index[qid]; seen {
			entries[at].CorrectValue = value
			summary.DuplicateRows++
			continue
		}
		index[qid] = len(entries)
		entries = append(entries, &models.AnswerKeyEntry{QuestionID: qid, CorrectValue: value})
	}

	summary.ImportedRows = len(entries)
	return entries, summary, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
