package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/scorecard-service/internal/errors"
	"github.com/SAP-F-2025/scorecard-service/internal/models"
)

// AnswerKeyValidator checks imported answer keys before they replace the
// stored one.
type AnswerKeyValidator struct {
	maxEntries int
}

func NewAnswerKeyValidator() *AnswerKeyValidator {
	return &AnswerKeyValidator{maxEntries: 1000}
}

// Validate reports every entry with a missing or non-numeric question id or
// an empty correct value, plus an oversized key.
func (v *AnswerKeyValidator) Validate(entries []*models.AnswerKeyEntry) ValidationErrors {
	var errs ValidationErrors

	if len(entries) == 0 {
		errs = append(errs, *errors.NewValidationError("entries", "answer key has no rows", 0))
		return errs
	}
	if len(entries) > v.maxEntries {
		errs = append(errs, *errors.NewValidationErrorWithRule("entries",
			fmt.Sprintf("answer key exceeds %d rows", v.maxEntries), "max", len(entries)))
	}

	for i, e := range entries {
		field := fmt.Sprintf("entries[%d]", i)
		qid := strings.TrimSpace(e.QuestionID)
		if qid == "" {
			errs = append(errs, *errors.NewValidationErrorWithRule(field+".question_id", "is required", "required", e.QuestionID))
		} else if strings.Trim(qid, "0123456789") != "" {
			errs = append(errs, *errors.NewValidationErrorWithRule(field+".question_id", "must be a number", "numeric", e.QuestionID))
		}
		if strings.TrimSpace(e.CorrectValue) == "" {
			errs = append(errs, *errors.NewValidationErrorWithRule(field+".correct_value", "is required", "required", e.CorrectValue))
		}
	}

	return errs
}
