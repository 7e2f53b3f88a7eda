package service

import (
	"errors"
	"fmt"
)

var (
	ErrIDRequired           = errors.New("id is required")
	ErrInvalidID            = errors.New("id must be a valid UUID")
	ErrNotFound             = errors.New("resource not found")
	ErrReaderNil            = errors.New("reader is nil")
	ErrEmptyFile            = errors.New("uploaded file is empty")
	ErrFileTooLarge         = errors.New("uploaded file is too large")
	ErrUnsupportedMediaType = errors.New("only image uploads are supported")
	ErrRecognitionFailed    = errors.New("food recognition failed")
	ErrUnknownChart         = errors.New("unknown chart kind")
)

// Validation error codes reported to clients.
const (
	CodeMissingField    = "MISSING_FIELD"
	CodeInvalidDate     = "INVALID_DATE"
	CodeInvalidUnit     = "INVALID_UNIT"
	CodeInvalidQuantity = "INVALID_QUANTITY"
)

// ValidationError rejects a single input field.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingField(field string) *ValidationError {
	return &ValidationError{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("missing required field: %s", field),
	}
}
