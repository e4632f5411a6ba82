package utils

import "net/http"

// AppError is an operational error safe to surface to API clients.
type AppError struct {
	StatusCode int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message}
}

// NewValidationError flags malformed or missing input.
func NewValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

// NewUnavailableError flags services not sellable at the requested branch.
func NewUnavailableError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

// NewConflictError flags a business-rule violation such as an illegal
// status transition or duplicate pricing.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}
