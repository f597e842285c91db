package wipp

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy. Every failure surfaced by the client wraps exactly one of
// these sentinels, so callers can branch with errors.Is regardless of the
// context added along the way.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrAuthentication       = errors.New("authentication failed")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrMalformedRecord      = errors.New("malformed record")
	ErrRequestFailed        = errors.New("request failed")
)

// APIError represents a non-success HTTP response from the WIPP API. It
// unwraps to the sentinel matching its status code.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("WIPP API returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("WIPP API returned status %d: %s", e.StatusCode, e.Body)
}

// Unwrap maps the status code onto the error taxonomy.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrAuthentication
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrRequestFailed
	}
}

// IsAuthentication checks if the error is an authentication (401) error.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsForbidden checks if the error is a forbidden (403) error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsNotFound checks if the error is a not found (404) error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
