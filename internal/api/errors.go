package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx backend response. Message is the
// human-readable text extracted from the backend's error envelope.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// decodeError builds an *APIError from the backend error envelope. The
// backend sends either {"detail": "message"} or, for validation failures,
// {"detail": [{"msg": "...", "type": "..."}]}; fall back to the status text
// when the body is not one of those.
func decodeError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Body: body}

	var env struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil && s != "" {
			apiErr.Message = s
			return apiErr
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(env.Detail, &items) == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				apiErr.Message = strings.Join(msgs, "; ")
				return apiErr
			}
		}

		if env.Message != "" {
			apiErr.Message = env.Message
			return apiErr
		}
	}

	if text := http.StatusText(status); text != "" {
		apiErr.Message = text
	} else {
		apiErr.Message = "request failed"
	}
	return apiErr
}

// statusIs reports whether err is an *APIError matching pred.
func statusIs(err error, pred func(int) bool) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return pred(apiErr.Status)
	}
	return false
}

// IsUnauthorized reports whether err is an HTTP 401 response.
func IsUnauthorized(err error) bool {
	return statusIs(err, func(s int) bool { return s == http.StatusUnauthorized })
}

// IsForbidden reports whether err is an HTTP 403 response.
func IsForbidden(err error) bool {
	return statusIs(err, func(s int) bool { return s == http.StatusForbidden })
}

// IsNotFound reports whether err is an HTTP 404 response.
func IsNotFound(err error) bool {
	return statusIs(err, func(s int) bool { return s == http.StatusNotFound })
}

// IsConflict reports whether err is an HTTP 409 response.
func IsConflict(err error) bool {
	return statusIs(err, func(s int) bool { return s == http.StatusConflict })
}

// IsValidation reports whether err is an HTTP 422 response.
func IsValidation(err error) bool {
	return statusIs(err, func(s int) bool { return s == http.StatusUnprocessableEntity })
}

// IsServerError reports whether err is an HTTP 5xx response.
func IsServerError(err error) bool {
	return statusIs(err, func(s int) bool { return s >= 500 })
}
