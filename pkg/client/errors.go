package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBaseURL is returned by New when the base URL cannot be parsed or
// lacks a scheme and host.
var ErrInvalidBaseURL = errors.New("client: invalid base URL")

// StatusError reports a non-2xx response that carried no backend error field.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("client: %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// ErrSummaryTooLarge is returned when a summary response exceeds the read cap.
var ErrSummaryTooLarge = errors.New("client: summary response too large")
