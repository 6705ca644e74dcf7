package util

import (
	"errors"
	"net/http"
)

// APIError is the one error type that crosses the service boundary. Every
// failure a handler can report maps onto it; anything else is a 500.
type APIError struct {
	Status  int
	Message string
	Details interface{}
}

func (e *APIError) Error() string { return e.Message }

func ValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

func ValidationErrorWithDetails(message string, details interface{}) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message, Details: details}
}

func Unauthenticated(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Message: message}
}

func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: message}
}

// InvalidTransition reports a workflow precondition failure. The current
// status travels in Details so the caller can react without a refetch.
func InvalidTransition(message string, currentStatus string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Message: message,
		Details: map[string]interface{}{"currentStatus": currentStatus},
	}
}

func ServiceUnavailable(message string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: message}
}

func ServerError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: message}
}

// StatusOf resolves the HTTP status for any error.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
