package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/scorecard-service/internal/document"
	apperrors "github.com/SAP-F-2025/scorecard-service/internal/errors"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound   = errors.New("resource not found")
	ErrBadRequest = errors.New("bad request")

	// Scoring specific errors
	ErrReportNotFound      = fmt.Errorf("%w: no score report for this phone number", ErrNotFound)
	ErrDocumentUnavailable = document.ErrUnavailable

	// Answer key specific errors
	ErrAnswerKeyEmpty        = errors.New("answer key has not been imported")
	ErrUnsupportedFileFormat = errors.New("unsupported file format, expected .xlsx or .csv")
	ErrAnswerKeyColumns      = errors.New("answer key file must have \"Question ID\" and \"Correct Response ID\" columns")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if error represents a validation failure, including an
// out-of-range exam level and a malformed upload.
func IsValidation(err error) bool {
	if errors.Is(err, ErrBadRequest) ||
		errors.Is(err, scoring.ErrInvalidLevel) ||
		errors.Is(err, ErrUnsupportedFileFormat) ||
		errors.Is(err, ErrAnswerKeyColumns) {
		return true
	}
	var ve apperrors.ValidationErrors
	var single *apperrors.ValidationError
	return errors.As(err, &ve) || errors.As(err, &single)
}

// IsUnprocessable reports a well-formed request that cannot be scored
func IsUnprocessable(err error) bool {
	return errors.Is(err, scoring.ErrNoQuestions) ||
		errors.Is(err, ErrAnswerKeyEmpty)
}

// IsUpstream reports a failure to retrieve the response sheet
func IsUpstream(err error) bool {
	return errors.Is(err, ErrDocumentUnavailable)
}
