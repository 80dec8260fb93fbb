package api

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/fintrack/internal/model"
)

var (
	// ErrNetwork marks a request that never produced an HTTP response:
	// connection refused, DNS failure, timeout.
	ErrNetwork = errors.New("api: network error")
	// ErrNotFound is returned when a looked-up record is absent.
	ErrNotFound = errors.New("api: transaction not found")
	// ErrInvalidBaseURL is returned by NewClient for an unusable base URL.
	ErrInvalidBaseURL = errors.New("api: invalid base URL")
)

// APIError is a non-2xx response. Message carries the server's "error"
// field verbatim and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// UserMessage turns err into the text shown to the user. action completes
// "Failed to ..." (e.g. "add budget").
func UserMessage(err error, action string) string {
	if err == nil {
		return ""
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, ErrNetwork) {
		return fmt.Sprintf("Failed to %s. Please check if the server is running.", action)
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	if errors.Is(err, ErrNotFound) {
		return "Transaction not found"
	}
	return "Failed to " + action
}
