package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// HTTPError is returned when the API answers with a non-2xx status.
// Detail carries the server-provided message when the body could be
// parsed, otherwise the raw body.
type HTTPError struct {
	Op         string
	StatusCode int
	Status     string
	Detail     string
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// parseErrorDetail extracts a human-readable message from an API error
// body. The server answers either {"detail": "..."} or a map of
// field name to message list.
func parseErrorDetail(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return trimmed
	}

	if raw, ok := payload["detail"]; ok {
		var detail string
		if json.Unmarshal(raw, &detail) == nil {
			return detail
		}
	}

	fields := make([]string, 0, len(payload))
	for name := range payload {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var parts []string
	for _, name := range fields {
		var messages []string
		if json.Unmarshal(payload[name], &messages) == nil {
			parts = append(parts, name+": "+strings.Join(messages, "; "))
			continue
		}
		var message string
		if json.Unmarshal(payload[name], &message) == nil {
			parts = append(parts, name+": "+message)
		}
	}
	if len(parts) == 0 {
		return trimmed
	}
	return strings.Join(parts, "; ")
}
