package backend

import (
	"errors"
	"net/http"
	"strings"
)

// APIError is a request the API rejected with a non-2xx status. Message holds
// the server-supplied error text when the body carried one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// ShouldClearSession reports whether a failed call indicates the stored token
// is no longer usable and the session must be dropped. A 401 is authoritative;
// the substring check on the message is kept as a fallback for deployed API
// versions that signal token problems only through error text.
func ShouldClearSession(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusUnauthorized {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "invalid") || strings.Contains(msg, "expired")
}

// Message extracts user-displayable text from any failure. API errors render
// their server message; everything else falls back to the transport error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
