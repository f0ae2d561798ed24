package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"github.com/xuri/excelize/v2"
)

const (
	masterSheetName  = "Scores"
	exportPageSize   = 500
	defaultSheetName = "Sheet1"
)

var candidateSheetHeaders = []string{"Question ID", "Type", "Response", "Marks"}

// ExportService renders stored submissions as Excel workbooks
type ExportService interface {
	// ExportSubmission returns a workbook with one sheet named by the phone
	// number, one row per question.
	ExportSubmission(ctx context.Context, phone string) ([]byte, error)
	// ExportMaster returns one row per stored submission
	ExportMaster(ctx context.Context) ([]byte, error)
}

type exportService struct {
	submissions repositories.SubmissionRepository
	subjects    []string
	logger      *ServiceLogger
}

// NewExportService writes master-sheet subject columns in subjectOrder.
// Layout subjects missing from subjectOrder follow in layout order and names
// outside the layout are ignored.
func NewExportService(submissions repositories.SubmissionRepository, layout scoring.Layout, subjectOrder []string, logger *slog.Logger) ExportService {
	return &exportService{
		submissions: submissions,
		subjects:    exportSubjects(layout, subjectOrder),
		logger:      NewServiceLogger(logger, LogConfig{Service: "scorecard-service", Component: "export"}),
	}
}

func exportSubjects(layout scoring.Layout, order []string) []string {
	inLayout := make(map[string]bool, len(layout))
	for _, subject := range layout {
		inLayout[subject.Name] = true
	}
	seen := make(map[string]bool, len(layout))
	subjects := make([]string, 0, len(layout))
	for _, name := range order {
		if inLayout[name] && !seen[name] {
			seen[name] = true
			subjects = append(subjects, name)
		}
	}
	for _, subject := range layout {
		if !seen[subject.Name] {
			subjects = append(subjects, subject.Name)
		}
	}
	return subjects
}

func (s *exportService) ExportSubmission(ctx context.Context, phone string) (data []byte, err error) {
	op := s.logger.WithOperation(ctx, "export_submission", phone)
	defer func() { op.LogResult(err) }()

	submission, err := s.submissions.GetByPhone(ctx, phone)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	records, err := submissionResponses(submission)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{r.QuestionID, string(r.Kind), r.Response, r.Marks})
	}

	return writeWorkbook(submission.Phone, toHeaderRow(candidateSheetHeaders), rows)
}

func (s *exportService) ExportMaster(ctx context.Context) (data []byte, err error) {
	op := s.logger.WithOperation(ctx, "export_master", "")
	defer func() { op.LogResult(err) }()

	var rows [][]interface{}
	filters := repositories.SubmissionFilters{
		Limit:     exportPageSize,
		SortBy:    "created_at",
		SortOrder: "asc",
	}
	for {
		page, total, err := s.submissions.List(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("failed to list submissions: %w", err)
		}
		for _, sub := range page {
			row, err := s.masterRow(sub)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		filters.Offset += len(page)
		if len(page) == 0 || int64(filters.Offset) >= total {
			break
		}
	}

	return writeWorkbook(masterSheetName, s.masterHeaders(), rows)
}

// masterHeaders lists candidate columns, one column per exported subject,
// then the result columns.
func (s *exportService) masterHeaders() []interface{} {
	headers := []interface{}{"Phone", "Name", "Application No", "Roll No", "Test Date", "Test Time"}
	for _, subject := range s.subjects {
		headers = append(headers, subject)
	}
	return append(headers, "Total", "Percentile", "Rank", "URL")
}

func (s *exportService) masterRow(sub *models.ScoreSubmission) ([]interface{}, error) {
	subjects, err := submissionSubjects(sub)
	if err != nil {
		return nil, err
	}

	row := []interface{}{
		sub.Phone, sub.CandidateName, sub.ApplicationNo, sub.RollNo, sub.TestDate, sub.TestTime,
	}
	for _, subject := range s.subjects {
		row = append(row, subjects[subject])
	}
	return append(row,
		sub.TotalScore,
		math.Round(sub.Percentile*1e4)/1e4,
		sub.Rank,
		sub.SourceURL,
	), nil
}

func writeWorkbook(sheetName string, headers []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write Excel header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func toHeaderRow(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}
