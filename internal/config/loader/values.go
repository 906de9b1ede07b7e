package loader

import (
	"fmt"
	"time"
)

// Values gives typed access to a nested configuration map.
// Each getter returns the fallback when the path is unset.
type Values map[string]any

// Get returns the raw value at a dot-separated path.
func (v Values) Get(path string) (any, bool) {
	return getByPath(v, path)
}

// String returns a string value.
func (v Values) String(path, fallback string) (string, error) {
	val, ok := v.Get(path)
	if !ok || val == nil {
		return fallback, nil
	}
	s, ok := val.(string)
	if !ok {
		return fallback, typeError(path, "string", val)
	}
	return s, nil
}

// Bool returns a boolean value.
func (v Values) Bool(path string, fallback bool) (bool, error) {
	val, ok := v.Get(path)
	if !ok || val == nil {
		return fallback, nil
	}
	switch b := val.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	default:
		return fallback, typeError(path, "bool", val)
	}
}

// Duration returns a duration. Strings are parsed with time.ParseDuration
// and integers are taken as milliseconds.
func (v Values) Duration(path string, fallback time.Duration) (time.Duration, error) {
	val, ok := v.Get(path)
	if !ok || val == nil {
		return fallback, nil
	}
	switch d := val.(type) {
	case time.Duration:
		return d, nil
	case int64:
		return time.Duration(d) * time.Millisecond, nil
	case int:
		return time.Duration(d) * time.Millisecond, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return fallback, fmt.Errorf("%s: %w", path, err)
		}
		return parsed, nil
	default:
		return fallback, typeError(path, "duration", val)
	}
}

func typeError(path, expected string, val any) error {
	return &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", val)}
}
