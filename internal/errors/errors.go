package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError is a failure in the layers around the classifier: ingest, column
// detection, export and the HTTP surface. The classifier itself never fails.
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Cause     error  `json:"-"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(code, message string, cause error) *AppError {
	_, file, line, _ := runtime.Caller(2)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

// WithDetails adds additional details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps the error code onto a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidInput, ErrCodeParseError:
		return http.StatusBadRequest
	case ErrCodeColumnNotFound:
		return http.StatusUnprocessableEntity
	case ErrCodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeColumnNotFound    = "COLUMN_NOT_FOUND"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeTooLarge          = "TOO_LARGE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

func InvalidInput(message string, cause error) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, cause)
}

func ParseError(message string, cause error) *AppError {
	return NewAppError(ErrCodeParseError, message, cause)
}

// ColumnNotFound is returned when no header looks like a score column. It is
// the only hard precondition failure of a classification run.
func ColumnNotFound(message string, cause error) *AppError {
	return NewAppError(ErrCodeColumnNotFound, message, cause)
}

func UnsupportedFormat(message string, cause error) *AppError {
	return NewAppError(ErrCodeUnsupportedFormat, message, cause)
}

func Unauthorized(message string, cause error) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, cause)
}

func TooLarge(message string, cause error) *AppError {
	return NewAppError(ErrCodeTooLarge, message, cause)
}

func InternalError(message string, cause error) *AppError {
	return NewAppError(ErrCodeInternalError, message, cause)
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries an AppError with the given code.
func IsCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
