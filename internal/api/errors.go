package api

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced entity does not exist on the server
var ErrNotFound = errors.New("entity not found")

// TransportError represents a failed call to the LibTool API: either a
// non-success HTTP status or a network-level failure (StatusCode 0).
type TransportError struct {
	StatusCode int
	Message    string
	cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("server error: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.cause
}
