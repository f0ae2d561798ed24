package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/SAP-F-2025/scorecard-service/internal/models"
	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func storedSubmission(phone string, total int) *models.ScoreSubmission {
	return &models.ScoreSubmission{
		Phone:         phone,
		CandidateName: "Asha Verma",
		ApplicationNo: "240310000001",
		RollNo:        "RJ01000001",
		TestDate:      "22/01/2025",
		TestTime:      "9:00 AM - 12:00 PM",
		Level:         1,
		TotalScore:    total,
		Percentile:    99.95251234,
		Rank:          590,
		Subjects: datatypes.JSON(`[{"subject":"Mathematics","score":4},` +
			`{"subject":"Physics","score":-1},{"subject":"Chemistry","score":0}]`),
		Responses: datatypes.JSON(`[{"question_id":"100","question_kind":"MCQ","response":"1002","marks":4,"rule":"literal"},` +
			`{"question_id":"200","question_kind":"SA","response":"42","marks":-1,"rule":"literal"}]`),
		SourceURL: "https://cdn3.digialm.com/sheet.html",
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExportService_ExportSubmission(t *testing.T) {
	repo := &MockSubmissionRepository{}
	ctx := context.Background()
	repo.On("GetByPhone", ctx, "9876543210").Return(storedSubmission("9876543210", 3), nil)
	repo.On("GetByPhone", ctx, "0000000000").Return(nil, gorm.ErrRecordNotFound)

	svc := NewExportService(repo, testLayout(), nil, testLogger())

	data, err := svc.ExportSubmission(ctx, "9876543210")
	require.NoError(t, err)

	book := openWorkbook(t, data)
	assert.Equal(t, []string{"9876543210"}, book.GetSheetList())

	rows, err := book.GetRows("9876543210")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Question ID", "Type", "Response", "Marks"}, rows[0])
	assert.Equal(t, []string{"100", "MCQ", "1002", "4"}, rows[1])
	assert.Equal(t, []string{"200", "SA", "42", "-1"}, rows[2])

	_, err = svc.ExportSubmission(ctx, "0000000000")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestExportService_ExportMaster(t *testing.T) {
	repo := &MockSubmissionRepository{}
	ctx := context.Background()
	repo.On("List", ctx, mock.MatchedBy(func(f repositories.SubmissionFilters) bool {
		return f.Offset == 0
	})).Return([]*models.ScoreSubmission{
		storedSubmission("1111111111", 3),
		storedSubmission("2222222222", 3),
	}, int64(2), nil)

	svc := NewExportService(repo, testLayout(), []string{"Physics", "Chemistry", "Mathematics"}, testLogger())
	data, err := svc.ExportMaster(ctx)
	require.NoError(t, err)

	rows, err := openWorkbook(t, data).GetRows("Scores")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Phone", "Name", "Application No", "Roll No", "Test Date", "Test Time",
		"Physics", "Chemistry", "Mathematics", "Total", "Percentile", "Rank", "URL",
	}, rows[0])
	assert.Len(t, rows[1], 13)
	assert.Equal(t, "1111111111", rows[1][0])
	assert.Equal(t, []string{"-1", "0", "4", "3"}, rows[1][6:10])
	assert.Equal(t, "99.9525", rows[1][10])
	assert.Equal(t, "590", rows[1][11])
	assert.Equal(t, "2222222222", rows[2][0])
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestExportSubjects(t *testing.T) {
	layout := testLayout()

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"layout order", nil, []string{"Mathematics", "Physics", "Chemistry"}},
		{"full order", []string{"Physics", "Chemistry", "Mathematics"}, []string{"Physics", "Chemistry", "Mathematics"}},
		{"partial order", []string{"Chemistry"}, []string{"Chemistry", "Mathematics", "Physics"}},
		{"unknown and repeated names", []string{"Biology", "Physics", "Physics"}, []string{"Physics", "Mathematics", "Chemistry"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exportSubjects(layout, tt.order))
		})
	}
}
