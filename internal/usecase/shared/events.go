package shared

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AuditEvents scans the agent's newline-delimited JSON event stream for
// error events. It returns whether any error was seen plus an ordered list
// of human-readable descriptions, each citing the 1-based line number.
//
// A line that fails to parse is itself an error event. A parsed object is
// an error event if "error" appears (case-insensitively) in its type or
// event field, its level or status field equals "error", or its error field
// is truthy. Classification never fails outright; ambiguity resolves toward
// reporting an error.
func AuditEvents(stream string) (bool, []string) {
	hasError := false
	var errors []string

	for idx, line := range strings.Split(stream, "\n") {
		lineNo := idx + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			hasError = true
			errors = append(errors, fmt.Sprintf("invalid JSONL at line %d: %v", lineNo, err))
			continue
		}

		if isErrorEvent(obj) {
			hasError = true
			snippet, err := json.Marshal(obj)
			if err != nil {
				snippet = []byte(line)
			}
			errors = append(errors, fmt.Sprintf("agent error event line %d: %s", lineNo, snippet))
		}
	}

	return hasError, errors
}

// isErrorEvent classifies one parsed event object.
func isErrorEvent(obj map[string]any) bool {
	if containsError(fieldString(obj, "type")) || containsError(fieldString(obj, "event")) {
		return true
	}
	if strings.EqualFold(fieldString(obj, "level"), "error") {
		return true
	}
	if strings.EqualFold(fieldString(obj, "status"), "error") {
		return true
	}
	return truthy(obj["error"])
}

func containsError(s string) bool {
	return strings.Contains(strings.ToLower(s), "error")
}

// fieldString renders a field value as text for substring matching,
// regardless of its JSON type.
func fieldString(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// truthy reports whether a decoded JSON value is non-empty/non-zero/non-false.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
