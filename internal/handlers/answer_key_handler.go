package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/scorecard-service/internal/services"
	"github.com/SAP-F-2025/scorecard-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnswerKeyHandler struct {
	BaseHandler
	answerKeyService services.AnswerKeyService
}

func NewAnswerKeyHandler(answerKeyService services.AnswerKeyService, logger utils.Logger) *AnswerKeyHandler {
	return &AnswerKeyHandler{
		BaseHandler:      NewBaseHandler(logger),
		answerKeyService: answerKeyService,
	}
}

// ImportAnswerKey handles POST /api/v1/answer-keys/import with a multipart
// "file" field.
func (h *AnswerKeyHandler) ImportAnswerKey(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "File is required", err)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Could not read uploaded file", err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing answer key", "filename", header.Filename, "size", header.Size)

	summary, err := h.answerKeyService.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer key imported", summary,
		"imported_rows", summary.ImportedRows)
}

// ListAnswerKey handles GET /api/v1/answer-keys
func (h *AnswerKeyHandler) ListAnswerKey(c *gin.Context) {
	entries, err := h.answerKeyService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer key retrieved", gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// AnswerKeyStatus handles GET /api/v1/answer-keys/status
func (h *AnswerKeyHandler) AnswerKeyStatus(c *gin.Context) {
	count, err := h.answerKeyService.Count(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer key status", gin.H{
		"loaded":    count > 0,
		"questions": count,
	})
}

// ClearAnswerKey handles DELETE /api/v1/answer-keys
func (h *AnswerKeyHandler) ClearAnswerKey(c *gin.Context) {
	if err := h.answerKeyService.Clear(c.Request.Context()); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answer key cleared", nil)
}
