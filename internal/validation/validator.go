package validation

import (
	"strings"

	"studyquiz/internal/domain"
)

// allowed upload extensions, matching the original tool's PDF/TXT picker
var allowedExtensions = []string{".pdf", ".txt"}

// Validator provides request validation functionality
type Validator struct {
	minQuestions int
	maxQuestions int
}

// NewValidator creates a new validator with the configured question bounds
func NewValidator(minQuestions, maxQuestions int) *Validator {
	return &Validator{
		minQuestions: minQuestions,
		maxQuestions: maxQuestions,
	}
}

// ValidateUpload validates an uploaded document before extraction
func (v *Validator) ValidateUpload(filename string, size int64) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errs = append(errs, domain.NewMissingFieldError("file"))
		return errs
	}

	if !hasAllowedExtension(filename) {
		errs = append(errs, domain.NewInvalidFormatError("file", filename))
	}
	if size == 0 {
		errs = append(errs, domain.ValidationError{Field: "file", Message: "is empty"})
	}

	return errs
}

// ValidateQuizRequest validates the quiz generation parameters
func (v *Validator) ValidateQuizRequest(req domain.QuizRequest) domain.ValidationErrors {
	return req.Validate(v.minQuestions, v.maxQuestions)
}

func hasAllowedExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
