package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// FallbackMessage is shown when a failure carries no server detail.
const FallbackMessage = "Failed"

// APIError is a non-success reply from the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Detail)
}

// Unwrap lets callers match rejected credentials with errors.Is(err, ErrUnauthorized).
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Message extracts the human-readable text of err: the server detail when
// present, FallbackMessage otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return FallbackMessage
}

// detailString keeps only string details; structured validation payloads
// fall back to FallbackMessage.
func detailString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
