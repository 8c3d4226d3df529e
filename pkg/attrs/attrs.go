// Package attrs reads values back out of slog-style key-value slices.
package attrs

import "reflect"

// ExtractString extracts a string value from a key-value attribute slice.
// The slice should be formatted as [key1, value1, key2, value2, ...].
// Returns empty string if the key is not found or the value is not a string.
func ExtractString(attrs []any, key string) string {
	if v, ok := lookup(attrs, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ExtractInt64 extracts an integer value, accepting any signed integer type
// and named integer types such as typed ids. Returns 0 when absent.
func ExtractInt64(attrs []any, key string) int64 {
	v, ok := lookup(attrs, key)
	if !ok {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	}
	return 0
}

func lookup(attrs []any, key string) (any, bool) {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		if k == key {
			return attrs[i+1], true
		}
	}
	return nil, false
}
