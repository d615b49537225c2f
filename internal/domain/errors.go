package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation  ErrorCode = "VALIDATION_ERROR"

	// Pipeline specific errors
	ErrEmptyInput       ErrorCode = "EMPTY_INPUT"
	ErrExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	ErrLLMServiceError  ErrorCode = "LLM_SERVICE_ERROR"
	ErrMalformedQuiz    ErrorCode = "MALFORMED_QUIZ"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrInternal, message, cause)
}

// NewEmptyInputError signals that no document and no pasted text were
// supplied. Per the error taxonomy this is not a pipeline failure; the
// caller is prompted to supply input.
func NewEmptyInputError() *DomainError {
	return NewError(ErrEmptyInput, "No study material supplied; upload a PDF/TXT or paste text", nil)
}

// NewExtractionError reports a document that could not be decoded by any
// extraction strategy. The extractor itself fails soft; this error exists
// so the display layer can tell the user what happened.
func NewExtractionError(filename string, cause error) *DomainError {
	return NewError(ErrExtractionFailed, fmt.Sprintf("Failed to extract text from %q", filename), cause)
}

// NewLLMServiceError wraps a failure of the external generative service.
// The quiz body and this error are distinct types on purpose: callers can
// never mistake a failure description for generated quiz content.
func NewLLMServiceError(cause error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to generate quiz with LLM service", cause)
}

func NewMalformedQuizError(detail string) *DomainError {
	return NewError(ErrMalformedQuiz, fmt.Sprintf("LLM returned quiz text that is not valid CSV: %s", detail), nil)
}

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates validation failures for a request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "has invalid format", Value: value}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}
