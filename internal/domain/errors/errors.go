package errors

import (
	"net/http"

	"herbarium/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Identity-related errors
	ErrIdentityNotFound = NewBaseError(
		http.StatusNotFound,
		"IDENTITY_NOT_FOUND",
		"identity is not registered",
		"",
	)

	ErrIdentityAlreadyExists = NewBaseError(
		http.StatusConflict,
		"IDENTITY_ALREADY_EXISTS",
		"identity is already registered",
		"",
	)

	ErrInvalidCredential = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIAL",
		"invalid identity or password",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"failed to process password",
		"",
	)

	// Plant-related errors
	ErrPlantNotFound = NewBaseError(
		http.StatusNotFound,
		"PLANT_NOT_FOUND",
		"plant record not found",
		"",
	)

	ErrInvalidField = NewBaseError(
		http.StatusBadRequest,
		"INVALID_FIELD",
		"a required field is missing or empty",
		"",
	)

	ErrPlantOwnershipViolation = NewBaseError(
		http.StatusForbidden,
		"PLANT_OWNERSHIP_VIOLATION",
		"only the owner may modify this plant record",
		"",
	)

	// Engagement-related errors
	ErrInvalidRating = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RATING",
		"rating must be an integer between 1 and 5",
		"",
	)

	ErrEmptyComment = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_COMMENT",
		"comment text must not be empty",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"request validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// LedgerExecuteError represents a ledger operation failure, implementing the AppError interface
type LedgerExecuteError struct {
	err     error
	details string
}

// NewLedgerExecuteError creates a ledger-related error
func NewLedgerExecuteError(err error, details string) AppError {
	return &LedgerExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *LedgerExecuteError) Error() string {
	return errors.Wrap(e.err, "ledger execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *LedgerExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *LedgerExecuteError) ErrorCode() string {
	return "LEDGER_UNAVAILABLE"
}

// Message returns the user-friendly error message
func (e *LedgerExecuteError) Message() string {
	return "ledger storage is unavailable"
}

// Details returns detailed error information
func (e *LedgerExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the underlying cause for errors.Is checks.
func (e *LedgerExecuteError) Unwrap() error {
	return e.err
}
