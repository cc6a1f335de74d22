package rest

import (
	"fmt"
	"sort"
	"strconv"
)

// Body is a POST payload. Values must be strings, booleans, integers or floats;
// nil is sent as an empty value.
type Body map[string]any

// formValues renders b as form fields.
func (b Body) formValues() (map[string]string, error) {
	out := make(map[string]string, len(b))
	for _, k := range b.keys() {
		s, err := primitiveString(b[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = s
	}
	return out, nil
}

// jsonValues checks b and returns it as a plain map for JSON encoding.
func (b Body) jsonValues() (map[string]any, error) {
	out := make(map[string]any, len(b))
	for _, k := range b.keys() {
		if _, err := primitiveString(b[k]); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = b[k]
	}
	return out, nil
}

// keys returns field names sorted so validation errors are deterministic.
func (b Body) keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func primitiveString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int8:
		return strconv.FormatInt(int64(t), 10), nil
	case int16:
		return strconv.FormatInt(int64(t), 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedBody, v)
	}
}
