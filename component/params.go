package component

import (
	"fmt"

	"github.com/kbukum/automl/errors"
)

// paramString reads a string parameter, falling back to def when absent.
func paramString(p Parameters, key, def string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q: expected string, got %T", key, v)
	}
	return s, nil
}

// paramFloat reads a numeric parameter, accepting int or float64.
func paramFloat(p Parameters, key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("parameter %q: expected number, got %T", key, v)
	}
}

// paramInt reads an integer parameter, accepting int or float64.
func paramInt(p Parameters, key string, def int) (int, error) {
	f, err := paramFloat(p, key, float64(def))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// paramStrings reads a string-slice parameter. YAML decoding produces
// []any, so both []string and []any of strings are accepted.
func paramStrings(p Parameters, key string) ([]string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch s := v.(type) {
	case []string:
		return s, nil
	case []any:
		out := make([]string, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %q: element %d is %T, expected string", key, i, item)
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("parameter %q: expected string list, got %T", key, v)
	}
}

// invalidParams wraps a parameter parse failure into the component error type.
func invalidParams(component string, err error) error {
	return errors.ComponentInvalidParams(component, err.Error()).WithCause(err)
}

// notFitted reports use of a component before Fit.
func notFitted(component, operation string) error {
	return errors.ComponentNotFitted(component, operation)
}
