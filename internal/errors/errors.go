// Package errors defines typed errors mapped onto HTTP status codes by the
// handler layer.
package errors

import (
	"errors"
	"fmt"
)

// Error type constants
const (
	ErrorTypeValidation   = "VALIDATION"
	ErrorTypeUnauthorized = "UNAUTHORIZED"
	ErrorTypeNotFound     = "NOT_FOUND"
	ErrorTypeCatalog      = "CATALOG_FAILURE"
	ErrorTypeInternal     = "INTERNAL"
)

// AppError carries an error classification alongside a user-facing message.
type AppError struct {
	Type    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a bad-request error with a user-facing message.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewUnauthorizedError creates an authentication error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewCatalogError wraps a failure from the external catalog API.
func NewCatalogError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeCatalog, Message: message, Cause: cause}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: "something went wrong", Cause: cause}
}

// AsAppError extracts an *AppError from err's chain, if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
