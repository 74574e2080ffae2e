package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrNetworkError indicates a network-related error
	ErrNetworkError = errors.New("network error")
)

// APIError is an answer the fixture should never give for a health route.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d) for %s: %s", e.StatusCode, e.Path, e.Message)
	}
	return fmt.Sprintf("API error (status %d) for %s", e.StatusCode, e.Path)
}

// IsNotFound checks if the error indicates a not found condition
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsServerError checks if the error is a server-side error
func IsServerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return false
}

// IsNetworkError checks if the error is network-related
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetworkError)
}
