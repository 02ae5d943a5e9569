package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnknownStatKind = "UNKNOWN_STAT_KIND"
	ErrCodeQueryFailed     = "QUERY_FAILED"
	ErrCodeMalformedRow    = "MALFORMED_ROW"
	ErrCodeUnavailable     = "UNAVAILABLE"
)

// Sentinels for errors.Is checks. Matching is by code only.
var (
	ErrNotFound        = &AppError{Code: ErrCodeNotFound}
	ErrValidation      = &AppError{Code: ErrCodeValidation}
	ErrUnknownStatKind = &AppError{Code: ErrCodeUnknownStatKind}
	ErrQueryFailed     = &AppError{Code: ErrCodeQueryFailed}
	ErrMalformedRow    = &AppError{Code: ErrCodeMalformedRow}
	ErrUnavailable     = &AppError{Code: ErrCodeUnavailable}
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "QUERY_FAILED")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// As extracts the outermost AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewUnknownStatKindError is returned when a stat identifier matches no known kind.
func NewUnknownStatKindError(id string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknownStatKind,
		Message: fmt.Sprintf("unknown stat kind: %q", id),
		Status:  400,
	}
}

// NewQueryFailedError wraps a failed storage query.
func NewQueryFailedError(query string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeQueryFailed,
		Message: fmt.Sprintf("%s query failed", query),
		Status:  503,
		Err:     err,
	}
}

// NewMalformedRowError reports a result row whose required field is absent or untypeable.
func NewMalformedRowError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeMalformedRow,
		Message: fmt.Sprintf("malformed row: %s %s", field, reason),
		Status:  500,
	}
}

// NewUnavailableError is returned when work cannot be accepted right now.
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Status:  503,
		Err:     err,
	}
}
