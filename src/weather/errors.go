package weather

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput matches any InvalidInputError
	ErrInvalidInput = errors.New("invalid input")
	// ErrCityNotFound matches a FetchError caused by a 404
	ErrCityNotFound = errors.New("city not found")
	// ErrUnauthorized matches a FetchError caused by a 401 or 403
	ErrUnauthorized = errors.New("unauthorized")
)

// InvalidInputError reports a missing or empty city name
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// Is lets errors.Is(err, ErrInvalidInput) succeed
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// FetchError reports a failed request or an unusable response.
// StatusCode is zero when no HTTP response was received.
type FetchError struct {
	City       string
	Mode       Mode
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s weather for %q", e.Mode, e.City)
	if e.StatusCode != 0 && e.StatusCode != http.StatusOK {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is maps HTTP statuses onto the package sentinels
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrCityNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
