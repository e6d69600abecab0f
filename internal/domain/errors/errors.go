package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage failure")
	ErrExternalAPI  = errors.New("external api failure")
)

// Error codes exposed to API consumers
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeStorage       = "STORAGE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// Storage wraps a persistence failure so callers can match both ErrStorage and the cause.
func Storage(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeStorage, "storage failure", fmt.Errorf("%w: %w", ErrStorage, err))
}

// ExternalErrorKind distinguishes how a call to the external API failed.
type ExternalErrorKind string

const (
	// ExternalStatusError: the API answered with a non-2xx status.
	ExternalStatusError ExternalErrorKind = "status"
	// ExternalRequestError: the request never produced a response (transport, timeout).
	ExternalRequestError ExternalErrorKind = "request"
	// ExternalUnexpectedError: anything else, including an unusable payload.
	ExternalUnexpectedError ExternalErrorKind = "unexpected"
)

// ExternalAPIError is returned by the sports API fetcher.
type ExternalAPIError struct {
	Kind       ExternalErrorKind
	StatusCode int
	Message    string
	Details    string
	Err        error
}

func (e *ExternalAPIError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}

func (e *ExternalAPIError) Is(target error) bool {
	return target == ErrExternalAPI
}

// HTTPStatus is the status reported to our own callers.
func (e *ExternalAPIError) HTTPStatus() int {
	if e.Kind == ExternalUnexpectedError {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func NewExternalStatusError(statusCode int, details string) *ExternalAPIError {
	return &ExternalAPIError{
		Kind:       ExternalStatusError,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("External API returned %d", statusCode),
		Details:    details,
	}
}

func NewExternalRequestError(err error) *ExternalAPIError {
	return &ExternalAPIError{
		Kind:    ExternalRequestError,
		Message: "Failed to connect to external API",
		Details: err.Error(),
		Err:     err,
	}
}

func NewExternalUnexpectedError(err error) *ExternalAPIError {
	return &ExternalAPIError{
		Kind:    ExternalUnexpectedError,
		Message: "Unexpected error occurred",
		Details: err.Error(),
		Err:     err,
	}
}
