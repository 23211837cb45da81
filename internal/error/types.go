package error

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation_error"
	ErrorTypeUnavailable ErrorType = "service_unavailable"
	ErrorTypeUpstream    ErrorType = "upstream_error"
	ErrorTypeInternal    ErrorType = "internal_error"
	ErrorTypeNotFound    ErrorType = "not_found"
)

// AppError represents a structured application error.
// Reply carries the human-readable fallback returned to chat clients;
// Detail is rendered as the "message" field of routing and unhandled failures.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Reply      string    `json:"reply,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// ------------------------------------------------------------------------------------------------------
// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ------------------------------------------------------------------------------------------------------
func (e *AppError) Unwrap() error {
	return e.Err
}

// ------------------------------------------------------------------------------------------------------
// NewValidationError creates a validation error
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// ------------------------------------------------------------------------------------------------------
// NewServiceUnavailableError creates an error for a provider that was never configured
func NewServiceUnavailableError(message, reply string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    message,
		Reply:      reply,
		StatusCode: http.StatusServiceUnavailable,
		Err:        ErrProviderNotConfigured,
	}
}

// ------------------------------------------------------------------------------------------------------
// NewUpstreamError creates an error that mirrors the provider's HTTP status.
// A missing status is reported as 500.
func NewUpstreamError(statusCode int, message, reply string, err error) *AppError {
	if statusCode < 400 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	return &AppError{
		Type:       ErrorTypeUpstream,
		Message:    message,
		Reply:      reply,
		StatusCode: statusCode,
		Err:        err,
	}
}

// ------------------------------------------------------------------------------------------------------
// NewInternalError creates an internal server error
func NewInternalError(message, reply string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Reply:      reply,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// ------------------------------------------------------------------------------------------------------
// NewUnhandledError creates the 500 returned for failures outside the chat relay,
// such as unreadable request bodies and recovered panics.
func NewUnhandledError(detail string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    MsgInternalServerError,
		Detail:     detail,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// ------------------------------------------------------------------------------------------------------
// NewNotFoundError creates a not found error
func NewNotFoundError(detail string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    MsgNotFound,
		Detail:     detail,
		StatusCode: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// ------------------------------------------------------------------------------------------------------
// GetHTTPStatusCode returns the appropriate HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}

	return http.StatusInternalServerError
}

// ------------------------------------------------------------------------------------------------------
// ErrorResponse represents the JSON error response structure.
// Chat failures carry Reply; routing and unhandled failures carry Message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reply   string `json:"reply,omitempty"`
	Message string `json:"message,omitempty"`
}

// ------------------------------------------------------------------------------------------------------
// NewErrorResponse creates a standardized error response
func NewErrorResponse(err error) ErrorResponse {
	var appErr *AppError

	if errors.As(err, &appErr) {
		return ErrorResponse{
			Error:   appErr.Message,
			Reply:   appErr.Reply,
			Message: appErr.Detail,
		}
	}

	return ErrorResponse{
		Error: MsgInternalServerError,
	}
}
