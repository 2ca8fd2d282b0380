package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var ErrUnexpectedResponse = errors.New("unexpected response")

// errorEnvelope is the failure body the server sends: the reason sits under
// "error" (a string or a field->message object) or under "message".
type errorEnvelope struct {
	Success bool            `json:"success"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (status %d)", strings.Join(parts, "; "), e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the server, i.e. the
// stored token is missing, malformed or expired.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func newAPIError(status int, env *errorEnvelope, raw string) *APIError {
	e := &APIError{StatusCode: status}

	if env != nil {
		switch {
		case env.Message != "":
			e.Message = env.Message
		case len(env.Error) > 0:
			var s string
			if err := json.Unmarshal(env.Error, &s); err == nil {
				e.Message = s
				break
			}
			var fields map[string]any
			if err := json.Unmarshal(env.Error, &fields); err == nil {
				e.Message = "validation failed"
				e.Fields = make(map[string]string, len(fields))
				for k, v := range fields {
					e.Fields[k] = fmt.Sprint(v)
				}
				break
			}
			e.Message = string(env.Error)
		}
	}

	if e.Message == "" {
		e.Message = strings.TrimSpace(raw)
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
