package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"
)

// APIError is a normalized backend rejection: either a per-field message map
// or a single detail string, never both.
type APIError struct {
	StatusCode int
	Fields     map[string][]string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request rejected with status %d", e.StatusCode)
}

// Messages flattens the error into human-readable strings: the single detail
// message, or every field message capitalized.
func (e *APIError) Messages() []string {
	if e.Detail != "" {
		return []string{e.Detail}
	}
	var out []string
	for _, values := range e.Fields {
		for _, value := range values {
			out = append(out, capitalize(value))
		}
	}
	if len(out) == 0 {
		out = append(out, e.Error())
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	fields := make(map[string][]string)
	for key, raw := range payload {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			fields[key] = list
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			fields[key] = []string{single}
		}
	}

	// Only the reserved non-field keys carry a detail message; anything else
	// is a field rejection even when a single field came back.
	for _, key := range []string{"detail", "non_field_errors"} {
		if values, ok := fields[key]; ok && len(fields) == 1 && len(values) > 0 {
			apiErr.Detail = values[0]
			return apiErr
		}
	}

	apiErr.Fields = fields
	return apiErr
}

// AsAPIError unwraps err into an APIError when it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ErrorMessages normalizes any error into display strings, flattening API
// rejections and passing transport errors through as a single message.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Messages()
	}
	return []string{err.Error()}
}
