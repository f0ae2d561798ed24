package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/scorecard-service/internal/document"
	"github.com/SAP-F-2025/scorecard-service/internal/events"
	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"github.com/SAP-F-2025/scorecard-service/internal/validator"
	"gorm.io/datatypes"
)

// ===== REQUEST AND RESPONSE TYPES =====

type CalculateRequest struct {
	URL   string `json:"url" validate:"required,sheet_url"`
	Phone string `json:"phone" validate:"required,phone"`
	Level int    `json:"level" validate:"omitempty,exam_level"`
}

type EvaluateRequest struct {
	HTML  string `json:"html" validate:"required"`
	Level int    `json:"level" validate:"omitempty,exam_level"`
}

// ScoreResult is what the API returns for a scored sheet. Subjects maps a
// subject name to its score.
type ScoreResult struct {
	Status     string          `json:"status"`
	Name       string          `json:"name"`
	Total      int             `json:"total"`
	Subjects   map[string]int  `json:"subjects"`
	Percentile float64         `json:"percentile"`
	Rank       int             `json:"rank"`
	Level      int             `json:"level"`
	Report     *scoring.Report `json:"report"`
}

type EstimateResult struct {
	Level      int     `json:"level"`
	Marks      float64 `json:"marks"`
	Percentile float64 `json:"percentile"`
	Rank       int     `json:"rank"`
}

// ScoringService drives the scoring engine for API requests
type ScoringService interface {
	// Calculate fetches the sheet at req.URL, scores it and stores the result
	// under req.Phone.
	Calculate(ctx context.Context, req *CalculateRequest) (*ScoreResult, error)
	// Evaluate scores an uploaded sheet without storing anything
	Evaluate(ctx context.Context, req *EvaluateRequest) (*ScoreResult, error)
	Estimate(ctx context.Context, level int, marks float64) (*EstimateResult, error)
	GetSubmission(ctx context.Context, phone string) (*models.ScoreSubmission, error)
	ListSubmissions(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.ScoreSubmission, int64, error)
	DeleteSubmission(ctx context.Context, phone string) error
	Layout() scoring.Layout
}

type scoringService struct {
	engine       *scoring.Engine
	fetcher      document.Fetcher
	answerKeys   AnswerKeyService
	submissions  repositories.SubmissionRepository
	publisher    events.EventPublisher
	validator    *validator.Validator
	defaultLevel int
	logger       *ServiceLogger
}

type ScoringServiceDeps struct {
	Engine       *scoring.Engine
	Fetcher      document.Fetcher
	AnswerKeys   AnswerKeyService
	Submissions  repositories.SubmissionRepository
	Publisher    events.EventPublisher
	Validator    *validator.Validator
	DefaultLevel int
	Logger       *slog.Logger
}

func NewScoringService(deps ScoringServiceDeps) ScoringService {
	level := deps.DefaultLevel
	if scoring.ValidateLevel(level) != nil {
		level = scoring.MinLevel
	}
	return &scoringService{
		engine:       deps.Engine,
		fetcher:      deps.Fetcher,
		answerKeys:   deps.AnswerKeys,
		submissions:  deps.Submissions,
		publisher:    deps.Publisher,
		validator:    deps.Validator,
		defaultLevel: level,
		logger:       NewServiceLogger(deps.Logger, LogConfig{Service: "scorecard-service", Component: "scoring"}),
	}
}

func (s *scoringService) Calculate(ctx context.Context, req *CalculateRequest) (result *ScoreResult, err error) {
	op := s.logger.WithOperation(ctx, "calculate_score", req.Phone)
	defer func() { op.LogResult(err, resultAttrs(result)...) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	level := s.levelOrDefault(req.Level)

	key, err := s.answerKeys.Current(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.Score(doc, key, level)
	if err != nil {
		return nil, err
	}

	submission, err := newSubmission(strings.TrimSpace(req.Phone), document.NormalizeURL(req.URL), report)
	if err != nil {
		return nil, err
	}
	if err := s.submissions.Upsert(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	result = newScoreResult(report)
	if perr := s.publisher.Publish(ctx, events.NewReportScoredEvent(events.ReportScoredEvent{
		Phone:         submission.Phone,
		CandidateName: report.Candidate.Name,
		Level:         report.Level,
		Total:         report.Total.Score,
		Subjects:      result.Subjects,
		Percentile:    report.Percentile,
		Rank:          report.Rank,
		ScoredAt:      time.Now(),
	})); perr != nil {
		s.logger.logger.WarnContext(ctx, "Failed to publish report.scored event",
			"phone", submission.Phone, "error", perr)
	}

	return result, nil
}

func (s *scoringService) Evaluate(ctx context.Context, req *EvaluateRequest) (result *ScoreResult, err error) {
	op := s.logger.WithOperation(ctx, "evaluate_score", "")
	defer func() { op.LogResult(err, resultAttrs(result)...) }()

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	key, err := s.answerKeys.Current(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := document.FlattenString(req.HTML)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	report, err := s.engine.Score(doc, key, s.levelOrDefault(req.Level))
	if err != nil {
		return nil, err
	}
	return newScoreResult(report), nil
}

func (s *scoringService) Estimate(ctx context.Context, level int, marks float64) (*EstimateResult, error) {
	percentile, rank, err := s.engine.Estimate(level, marks)
	if err != nil {
		return nil, err
	}
	return &EstimateResult{Level: level, Marks: marks, Percentile: percentile, Rank: rank}, nil
}

func (s *scoringService) GetSubmission(ctx context.Context, phone string) (*models.ScoreSubmission, error) {
	submission, err := s.submissions.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return submission, nil
}

func (s *scoringService) ListSubmissions(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.ScoreSubmission, int64, error) {
	return s.submissions.List(ctx, filters)
}

func (s *scoringService) DeleteSubmission(ctx context.Context, phone string) (err error) {
	phone = strings.TrimSpace(phone)
	op := s.logger.WithOperation(ctx, "delete_submission", phone)
	defer func() { op.LogResult(err) }()

	if err := s.submissions.Delete(ctx, phone); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrReportNotFound
		}
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}

func (s *scoringService) Layout() scoring.Layout {
	return s.engine.Layout()
}

func (s *scoringService) levelOrDefault(level int) int {
	if level == 0 {
		return s.defaultLevel
	}
	return level
}

// ===== HELPERS =====

func newScoreResult(report *scoring.Report) *ScoreResult {
	subjects := make(map[string]int, len(report.Subjects))
	for _, sub := range report.Subjects {
		subjects[sub.Subject] = sub.Score
	}
	return &ScoreResult{
		Status:     "success",
		Name:       report.Candidate.Name,
		Total:      report.Total.Score,
		Subjects:   subjects,
		Percentile: report.Percentile,
		Rank:       report.Rank,
		Level:      report.Level,
		Report:     report,
	}
}

func newSubmission(phone, url string, report *scoring.Report) (*models.ScoreSubmission, error) {
	subjects, err := json.Marshal(report.Subjects)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subject scores: %w", err)
	}
	responses, err := json.Marshal(report.PerQuestion)
	if err != nil {
		return nil, fmt.Errorf("failed to encode responses: %w", err)
	}

	return &models.ScoreSubmission{
		Phone:         phone,
		CandidateName: report.Candidate.Name,
		ApplicationNo: report.Candidate.ApplicationNo,
		RollNo:        report.Candidate.RollNo,
		TestDate:      report.Candidate.TestDate,
		TestTime:      report.Candidate.TestTime,
		Level:         report.Level,
		TotalScore:    report.Total.Score,
		Correct:       report.Total.Correct,
		Incorrect:     report.Total.Incorrect,
		Unanswered:    report.Total.Unattempted,
		Percentile:    report.Percentile,
		Rank:          report.Rank,
		Subjects:      datatypes.JSON(subjects),
		Responses:     datatypes.JSON(responses),
		SourceURL:     url,
	}, nil
}

// submissionSubjects decodes the stored subject scores keyed by name
func submissionSubjects(sub *models.ScoreSubmission) (map[string]int, error) {
	var subjects []scoring.SubjectScore
	if len(sub.Subjects) > 0 {
		if err := json.Unmarshal(sub.Subjects, &subjects); err != nil {
			return nil, fmt.Errorf("submission %s: decode subjects: %w", sub.Phone, err)
		}
	}
	out := make(map[string]int, len(subjects))
	for _, s := range subjects {
		out[s.Subject] = s.Score
	}
	return out, nil
}

func submissionResponses(sub *models.ScoreSubmission) ([]scoring.ScoredRecord, error) {
	var records []scoring.ScoredRecord
	if len(sub.Responses) > 0 {
		if err := json.Unmarshal(sub.Responses, &records); err != nil {
			return nil, fmt.Errorf("submission %s: decode responses: %w", sub.Phone, err)
		}
	}
	return records, nil
}

func resultAttrs(result *ScoreResult) []slog.Attr {
	if result == nil {
		return nil
	}
	return []slog.Attr{
		slog.Int("level", result.Level),
		slog.Int("total", result.Total),
		slog.Float64("percentile", result.Percentile),
		slog.Int("rank", result.Rank),
	}
}
