package api

import (
	"errors"
	"net/http"
)

// Error is the single failure kind the API client produces. Every non-2xx
// response and every transport failure collapses into one of these; the
// Message is what the user sees. Status is 0 when no response was received.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an API failure with HTTP status 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
