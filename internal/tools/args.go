package tools

import "strings"

// stringArg returns args[key] when it is a string.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	s, ok := args[key].(string)
	return s, ok
}

// requireString returns args[key] or a ValidationError naming the tool.
func requireString(tool string, args map[string]interface{}, key string) (string, error) {
	v, present := args[key]
	if !present || v == nil {
		return "", &ValidationError{Tool: tool, Field: key, Reason: "is required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Tool: tool, Field: key, Reason: "must be a string"}
	}
	return s, nil
}

// intArg reads a JSON number as an int. JSON decoding yields float64; callers
// constructing args in Go may pass an int.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nonBlank reports whether s has any non-space content.
func nonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
