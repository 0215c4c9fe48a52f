package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a custom error type for API responses
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

// Error returns the error message
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput     = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized     = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrForbidden        = NewAPIError("FORBIDDEN", "Unauthorized action", http.StatusForbidden)
	ErrUserNotFound     = NewAPIError("USER_NOT_FOUND", "User not found", http.StatusNotFound)
	ErrSelfFollow       = NewAPIError("SELF_FOLLOW", "You cannot follow yourself", http.StatusBadRequest)
	ErrAlreadyFollowing = NewAPIError("ALREADY_FOLLOWING", "Already following this user", http.StatusBadRequest)
	ErrNotFollowing     = NewAPIError("NOT_FOLLOWING", "You are not following this user", http.StatusBadRequest)
	ErrUsernameTaken    = NewAPIError("USERNAME_TAKEN", "Username already taken", http.StatusConflict)
	ErrInternal         = NewAPIError("INTERNAL_SERVER_ERROR", "Server error", http.StatusInternalServerError)
)

func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}
