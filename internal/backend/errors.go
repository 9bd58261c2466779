package backend

import (
	"errors"
	"fmt"
)

var (
	ErrUnknown  = errors.New("unknown order service error")
	ErrNotFound = errors.New("not found in order service")
)

// Error carries the message the order service returned for a failed call.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("order service error %d: %s", e.StatusCode, e.Message)
}

type ErrThrottle struct {
	RetryAfter int
}

func (e *ErrThrottle) Error() string {
	return fmt.Sprintf("too many requests, retry after %d seconds", e.RetryAfter)
}

// Message extracts the text to show the user for a failed call, falling back
// to fallback when the service gave none.
func Message(err error, fallback string) string {
	var serviceErr *Error
	if errors.As(err, &serviceErr) && serviceErr.Message != "" {
		return serviceErr.Message
	}
	return fallback
}
