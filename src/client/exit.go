package client

import (
	"errors"
	"fmt"

	"github.com/apimgr/cityweather/src/weather"
)

// Exit codes
const (
	// Success
	ExitSuccess = 0
	// General error, including unusable API responses
	ExitGeneralError = 1
	// Configuration error
	ExitConfigError = 2
	// Connection error
	ExitConnError = 3
	// Authentication error (bad or missing API key)
	ExitAuthError = 4
	// City not found
	ExitNotFound = 5
	// Usage error or invalid input
	ExitUsageError = 64
)

// ExitError represents an error with a specific exit code
type ExitError struct {
	Message string
	Code    int
	Err     error
}

// Error implements the error interface
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error, if any
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError
func NewExitError(message string, code int) *ExitError {
	return &ExitError{Message: message, Code: code}
}

// NewConfigError creates a config error (exit code 2)
func NewConfigError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitConfigError}
}

// NewConnectionError creates a connection error (exit code 3)
func NewConnectionError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitConnError}
}

// NewAuthError creates an auth error (exit code 4)
func NewAuthError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitAuthError}
}

// NewNotFoundError creates a not found error (exit code 5)
func NewNotFoundError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitNotFound}
}

// NewUsageError creates a usage error (exit code 64)
func NewUsageError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitUsageError}
}

// NewAPIError creates a general API error (exit code 1)
func NewAPIError(message string) *ExitError {
	return &ExitError{Message: message, Code: ExitGeneralError}
}

// toExitError maps weather errors onto exit codes. ExitErrors pass through.
func toExitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var wrapped *ExitError
	var fetchErr *weather.FetchError
	switch {
	case errors.Is(err, weather.ErrInvalidInput):
		wrapped = NewUsageError(err.Error())
	case errors.Is(err, weather.ErrCityNotFound):
		wrapped = NewNotFoundError(fmt.Sprintf("city %q not found", fetchErrorOf(err).City))
	case errors.Is(err, weather.ErrUnauthorized):
		wrapped = NewAuthError("request rejected by the weather API - check your API key (OPENWEATHER_API_KEY)")
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == 0:
		wrapped = NewConnectionError(err.Error())
	default:
		wrapped = NewAPIError(err.Error())
	}
	wrapped.Err = err
	return wrapped
}

// fetchErrorOf returns the FetchError in err's chain, or an empty one
func fetchErrorOf(err error) *weather.FetchError {
	var fetchErr *weather.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}
	return &weather.FetchError{}
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneralError
}
