package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a failure reported by the server, either through the HTTP
// status or through the statusCode of the response envelope
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsUnauthorized reports whether err is an APIError for a rejected token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// newAPIError builds an APIError whose Message is always plain text:
// the body's message/error field when present, otherwise the raw body
func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    errorMessage(body),
		Body:       string(body),
	}
}

func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		for _, field := range []string{"message", "error", "msg"} {
			if msg, ok := payload[field].(string); ok && msg != "" {
				return msg
			}
		}
	}

	text := strings.TrimSpace(string(trimmed))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
