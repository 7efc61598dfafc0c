package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkErrorMessage is the uniform message carried by transport-level
// failures, so calling code never has to distinguish a dead connection from
// a server error response.
const NetworkErrorMessage = "Network error. Please check your internet connection."

// APIError is the single error shape the client surfaces. StatusCode is zero
// when no response was received at all.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message extracts the server-supplied message from err, falling back to the
// given default. Stores use this to fill their observable error slot while
// still propagating the original error.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is an authorization failure from the
// server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsNetwork reports whether err is a normalized transport failure.
func IsNetwork(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 0
}
