package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/scorecard-service/internal/repositories"
	"github.com/SAP-F-2025/scorecard-service/internal/services"
	"github.com/SAP-F-2025/scorecard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	BaseHandler
	scoringService services.ScoringService
	exportService  services.ExportService
}

func NewScoreHandler(
	scoringService services.ScoringService,
	exportService services.ExportService,
	logger utils.Logger,
) *ScoreHandler {
	return &ScoreHandler{
		BaseHandler:    NewBaseHandler(logger),
		scoringService: scoringService,
		exportService:  exportService,
	}
}

// CalculateScore handles POST /api/v1/scores/calculate
func (h *ScoreHandler) CalculateScore(c *gin.Context) {
	var req services.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Calculating score", "phone", req.Phone, "level", req.Level)

	result, err := h.scoringService.Calculate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// EvaluateScore handles POST /api/v1/scores/evaluate
func (h *ScoreHandler) EvaluateScore(c *gin.Context) {
	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	result, err := h.scoringService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSubmission handles GET /api/v1/scores/:phone
func (h *ScoreHandler) GetSubmission(c *gin.Context) {
	phone := ParseStringIDParam(c, "phone")
	if phone == "" {
		return
	}

	submission, err := h.scoringService.GetSubmission(c.Request.Context(), phone)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Submission retrieved", submission, "phone", phone)
}

// DeleteSubmission handles DELETE /api/v1/scores/:phone
func (h *ScoreHandler) DeleteSubmission(c *gin.Context) {
	phone := ParseStringIDParam(c, "phone")
	if phone == "" {
		return
	}

	if err := h.scoringService.DeleteSubmission(c.Request.Context(), phone); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Submission deleted", nil, "phone", phone)
}

// ListSubmissions handles GET /api/v1/scores
func (h *ScoreHandler) ListSubmissions(c *gin.Context) {
	filters := repositories.SubmissionFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	var err error
	if filters.Level, err = queryInt(c, "level"); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if filters.MinTotal, err = queryInt(c, "min_total"); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	for name, dst := range map[string]*int{"limit": &filters.Limit, "offset": &filters.Offset} {
		v, err := queryInt(c, name)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		if v != nil {
			*dst = *v
		}
	}

	submissions, total, err := h.scoringService.ListSubmissions(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Submissions retrieved", gin.H{
		"submissions": submissions,
		"total":       total,
		"limit":       filters.Limit,
		"offset":      filters.Offset,
	})
}

// ExportSubmission handles GET /api/v1/scores/:phone/export
func (h *ScoreHandler) ExportSubmission(c *gin.Context) {
	phone := ParseStringIDParam(c, "phone")
	if phone == "" {
		return
	}

	data, err := h.exportService.ExportSubmission(c.Request.Context(), phone)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendWorkbook(c, phone+".xlsx", data)
}

// ExportMaster handles GET /api/v1/scores/export
func (h *ScoreHandler) ExportMaster(c *gin.Context) {
	data, err := h.exportService.ExportMaster(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	sendWorkbook(c, "scores.xlsx", data)
}

// Estimate handles GET /api/v1/estimates?level=&marks=
func (h *ScoreHandler) Estimate(c *gin.Context) {
	level, err := strconv.Atoi(strings.TrimSpace(c.Query("level")))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "level must be an integer between 1 and 5", err)
		return
	}
	marks, err := strconv.ParseFloat(strings.TrimSpace(c.Query("marks")), 64)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "marks must be a number", err)
		return
	}

	result, err := h.scoringService.Estimate(c.Request.Context(), level, marks)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Estimate calculated", result)
}
