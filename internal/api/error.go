package api

import (
	"errors"
	"fmt"
)

// Error is a backend-reported failure carrying the HTTP status and the
// server's message string.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

// StatusOf extracts the HTTP status from an error chain, or 0 when the
// error did not originate from a server response.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether the error is a 401 from the server
func IsUnauthorized(err error) bool {
	return StatusOf(err) == 401
}
