package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// ErrNotConfigured is returned when the hosted backend has no usable credentials.
var ErrNotConfigured = errors.New("backend is not configured")

// Error codes carried by AppError and returned to clients.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeBackend    = "BACKEND_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

var codeStatus = map[string]int{
	CodeNotFound:   http.StatusNotFound,
	CodeValidation: http.StatusBadRequest,
	CodeBackend:    http.StatusBadGateway,
	CodeInternal:   http.StatusInternalServerError,
}

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError is an error with a client-facing code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error's code, 500 when unknown.
func (e *AppError) Status() int {
	if status, ok := codeStatus[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s with ID %v not found", resource, id)}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// NewBackendError wraps a failed call to the data backend.
func NewBackendError(op string, err error) *AppError {
	return &AppError{Code: CodeBackend, Message: fmt.Sprintf("backend %s failed", op), Err: err}
}

// AsAppError returns err as an AppError. Anything that is not one already
// is treated as a failed backend call.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewBackendError("call", err)
}

// RespondWithError writes err as an ErrorResponse with the given status.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Error: err.Error()}
	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{Error: appErr.Message, Code: appErr.Code}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	}
	return c.Status(status).JSON(response)
}
