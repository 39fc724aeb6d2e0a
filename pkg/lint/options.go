package lint

import "fortio.org/safecast"

// Options holds per-lint settings from configuration. Values come from YAML,
// JSON or flags, so numbers may arrive as int, int64 or float64.
type Options map[string]any

// Option extracts a typed option with a default value.
func Option[T any](o Options, key string, defaultVal T) T {
	v, ok := o[key]
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// Int extracts an int option, handling float64 from JSON. Values that do not
// fit an int, or floats with a fractional part, yield the default.
func (o Options) Int(key string, defaultVal int) int {
	var (
		n   int
		err error
	)
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		n, err = safecast.Conv[int](v)
	case uint64:
		n, err = safecast.Conv[int](v)
	case float64:
		n, err = safecast.Convert[int](v)
	default:
		return defaultVal
	}
	if err != nil {
		return defaultVal
	}
	return n
}

// String extracts a string option.
func (o Options) String(key string, defaultVal string) string {
	return Option(o, key, defaultVal)
}

// Bool extracts a bool option.
func (o Options) Bool(key string, defaultVal bool) bool {
	return Option(o, key, defaultVal)
}

// StringSlice extracts a string slice option.
func (o Options) StringSlice(key string, defaultVal []string) []string {
	switch s := o[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return defaultVal
	}
}
