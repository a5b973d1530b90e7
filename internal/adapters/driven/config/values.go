// Package config holds helpers shared by the configuration store adapters.
package config

import (
	"strconv"
	"strings"
)

// String converts a stored value to a string. Non-strings yield "".
func String(val any) string {
	s, _ := val.(string)
	return s
}

// Int converts a stored value to an int. TOML decodes integers as int64
// and JSON as float64; both are accepted.
func Int(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Float converts a stored value to a float64. Integers are converted.
func Float(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

// Bool converts a stored value to a bool. Non-bools yield false.
func Bool(val any) bool {
	b, _ := val.(bool)
	return b
}

// StringSlice converts a stored value to a []string, dropping non-string
// elements of a decoded array.
func StringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Flatten converts nested maps to dot-notation keys, so
// {"llm": {"model": "x"}} becomes {"llm.model": "x"}.
func Flatten(m map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	for key, value := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range Flatten(nested, full) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}

// Nest is the inverse of Flatten: dot-notation keys become nested tables.
// A key that collides with an existing leaf is kept flat.
func Nest(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range flat {
		parts := strings.Split(key, ".")
		table := out
		nested := true
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part]
			if !ok {
				child := make(map[string]any)
				table[part] = child
				table = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				nested = false
				break
			}
			table = child
		}
		if !nested {
			out[key] = value
			continue
		}
		table[parts[len(parts)-1]] = value
	}
	return out
}
