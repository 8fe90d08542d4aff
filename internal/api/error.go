package api

import (
	"fmt"
	"strings"
)

// RequestError is the normalized failure for any non-success HTTP status.
// It is the only error shape commands need to understand.
type RequestError struct {
	// Status is the HTTP status code.
	Status int

	// Message is the user-facing message extracted from the response body.
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Unauthorized reports whether the failure means the session is invalid.
func (e *RequestError) Unauthorized() bool {
	return e.Status == 401 || e.Status == 403
}

// extractMessage derives a user-facing message from an already-parsed
// response body. It never panics, whatever shape the backend returns:
//   - a non-empty string body is used verbatim
//   - a structured body prefers error.message, appending any
//     error.details[].message entries joined with " | "
//   - everything else falls back to a generic status line
func extractMessage(data any, status int) string {
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case map[string]any:
		var main, details string
		if errObj, ok := v["error"].(map[string]any); ok {
			if m, ok := errObj["message"].(string); ok {
				main = m
			}
			if ds, ok := errObj["details"].([]any); ok {
				var parts []string
				for _, d := range ds {
					dm, ok := d.(map[string]any)
					if !ok {
						continue
					}
					if msg, ok := dm["message"].(string); ok && msg != "" {
						parts = append(parts, msg)
					}
				}
				details = strings.Join(parts, " | ")
			}
		}
		if main == "" {
			if m, ok := v["message"].(string); ok {
				main = m
			}
		}
		if main == "" {
			main = genericMessage(status)
		}
		if details != "" {
			return main + " — " + details
		}
		return main
	}
	return genericMessage(status)
}

func genericMessage(status int) string {
	return fmt.Sprintf("Request failed (%d)", status)
}
