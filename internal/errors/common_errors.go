package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeSchema     ErrorType = "SCHEMA_MISMATCH"
	ErrTypeCoercion   ErrorType = "TYPE_COERCION"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeInternal   ErrorType = "INTERNAL"
)

// Kind sentinels. errors.Is(err, ErrNotFound) is true for any *AppError of
// type ErrTypeNotFound in err's chain.
var (
	ErrNotFound       = &AppError{Type: ErrTypeNotFound}
	ErrSchemaMismatch = &AppError{Type: ErrTypeSchema}
	ErrCoercion       = &AppError{Type: ErrTypeCoercion}
	ErrParsing        = &AppError{Type: ErrTypeParsing}
	ErrValidation     = &AppError{Type: ErrTypeValidation}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches kind sentinels: a target with no message matches on Type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Type == e.Type
	}
	return t == e
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of the first *AppError in err's chain, or
// an empty string when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewSchemaError reports a header that lacks required fields. The message
// names the complete required set.
func NewSchemaError(required, missing, header []string) *AppError {
	msg := fmt.Sprintf("header is missing required fields %s; required fields are %s",
		quoteList(missing), quoteList(required))
	return NewAppError(ErrTypeSchema, msg, nil).
		WithContext("required", required).
		WithContext("missing", missing).
		WithContext("header", header)
}

// NewCoercionError reports a cell that could not be converted to its
// field's type. row is the zero-based data row index, line the source line.
func NewCoercionError(field string, row, line int, raw string, cause error) *AppError {
	msg := fmt.Sprintf("cannot convert field %q at row %d (line %d): invalid value %q", field, row, line, raw)
	return NewAppError(ErrTypeCoercion, msg, cause).
		WithContext("field", field).
		WithContext("row", row).
		WithContext("line", line).
		WithContext("value", raw)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewInternalAppError reports a broken invariant.
func NewInternalAppError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInternal, message, cause)
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
