package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrDuplicateUser is returned when the unique constraint rejects an
	// insert that slipped past the existence checks.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound is returned when a referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
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
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_USER")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
