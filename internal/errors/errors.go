package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/cristianadrielbraun/qrframe/internal/encoder"
	"github.com/cristianadrielbraun/qrframe/internal/render"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeProcessing ErrorType = "processing"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, http.StatusBadRequest, message, cause)
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return newError(ErrorTypeNetwork, http.StatusBadGateway, message, cause)
}

// NewProcessingError creates a new processing error
func NewProcessingError(message string, cause error) *AppError {
	return newError(ErrorTypeProcessing, http.StatusUnprocessableEntity, message, cause)
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return newError(ErrorTypeTimeout, http.StatusGatewayTimeout, message, cause)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return newError(ErrorTypeInternal, http.StatusInternalServerError, message, cause)
}

func newError(t ErrorType, status int, message string, cause error) *AppError {
	return &AppError{Type: t, Message: message, StatusCode: status, Cause: cause}
}

// FromRender classifies an error returned by the render engine. Validation
// errors carry the engine message in Details so clients see which input was
// rejected.
func FromRender(err error) *AppError {
	appErr := classify(err)
	if appErr != nil && appErr.Type == ErrorTypeValidation && appErr.Details == "" && appErr.Cause != nil {
		appErr.Details = appErr.Cause.Error()
	}
	return appErr
}

func classify(err error) *AppError {
	var appErr *AppError
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, render.ErrInvalidColor):
		return NewValidationError("invalid color", err)
	case stderrors.Is(err, render.ErrEmptyInput):
		return NewValidationError("text must not be empty", err)
	case stderrors.Is(err, render.ErrLayoutOverflow):
		return NewValidationError("size too small for the requested frame", err)
	case stderrors.Is(err, encoder.ErrTooSmall):
		return NewValidationError("size too small for the payload", err)
	case stderrors.Is(err, render.ErrLogoUnavailable):
		return NewNetworkError("logo unavailable", err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError("render timed out", err)
	default:
		return NewInternalError("failed to generate QR code", err)
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
