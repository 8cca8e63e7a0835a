package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	errs "github.com/jrsteele09/taskflow/internal/errors"
)

const maxMessageLength = 200

// StatusError is a non-2xx answer from the backend
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("[gateway %s %s] %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap classifies the status for errors.Is
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return errs.ErrAuthorizationDenied
	case http.StatusNotFound:
		return errs.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errs.ErrInvalidInput
	default:
		return nil
	}
}

// errorMessage picks a readable message out of an error body. ASP.NET returns
// problem details (title/detail); other handlers use message or error.
func errorMessage(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return ""
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, key := range []string{"message", "detail", "title", "error"} {
			if s, ok := body[key].(string); ok && s != "" {
				return truncate(s)
			}
		}
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return truncate(plain)
	}
	return truncate(text)
}

func truncate(s string) string {
	if len(s) > maxMessageLength {
		return s[:maxMessageLength] + "..."
	}
	return s
}
