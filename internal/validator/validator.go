package validator

import (
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/SAP-F-2025/scorecard-service/internal/errors"
	"github.com/SAP-F-2025/scorecard-service/internal/scoring"
	"github.com/go-playground/validator/v10"
)

type ValidationErrors = apperrors.ValidationErrors

// Validator combines struct-tag validation with answer-key business rules
type Validator struct {
	structValidator    *validator.Validate
	answerKeyValidator *AnswerKeyValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:    structValidator,
		answerKeyValidator: NewAnswerKeyValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures into ValidationErrors
func (v *Validator) Validate(s interface{}) error {
	err := v.ValidateStruct(s)
	if err == nil {
		return nil
	}
	if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

// AnswerKey returns the answer key validator
func (v *Validator) AnswerKey() *AnswerKeyValidator {
	return v.answerKeyValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exam_level", validateExamLevel)
	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("sheet_url", validateSheetURL)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateExamLevel(fl validator.FieldLevel) bool {
	return scoring.ValidateLevel(int(fl.Field().Int())) == nil
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

func validateSheetURL(fl validator.FieldLevel) bool {
	u := strings.TrimSpace(fl.Field().String())
	return strings.HasPrefix(u, "http://") ||
		strings.HasPrefix(u, "https://") ||
		strings.HasPrefix(u, "cdn3")
}
