package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput is returned when a required field is empty or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBoardNotFound is returned when a board does not exist.
	ErrBoardNotFound = errors.New("board not found")
	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrForbidden is returned when a resource exists but is owned by another user.
	ErrForbidden = errors.New("you do not have access to this resource")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrInvalidInput:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case ErrBoardNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOARD_NOT_FOUND")
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
