package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonwraymond/toolcatalog/catalog"
)

func invalidArg(format string, a ...any) error {
	return fmt.Errorf("%w: %s", catalog.ErrInvalidArgument, fmt.Sprintf(format, a...))
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", invalidArg("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArg("%s must be a string", key)
	}
	return s, nil
}

func optionalString(args map[string]any, key, def string) (string, error) {
	if v, ok := args[key]; !ok || v == nil {
		return def, nil
	}
	return stringArg(args, key)
}

// intArg accepts JSON numbers and numeric strings.
func intArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, invalidArg("%s is required", key)
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, invalidArg("%s must be an integer", key)
		}
		if n >= 1<<63 || n < -1<<63 {
			return 0, invalidArg("%s is out of range", key)
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, invalidArg("%s must be an integer", key)
		}
		return i, nil
	default:
		return 0, invalidArg("%s must be an integer", key)
	}
}

func optionalInt(args map[string]any, key string, def int64) (int64, error) {
	if v, ok := args[key]; !ok || v == nil {
		return def, nil
	}
	return intArg(args, key)
}

func floatArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, invalidArg("%s is required", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, invalidArg("%s must be a number", key)
		}
		return f, nil
	default:
		return 0, invalidArg("%s must be a number", key)
	}
}

func optionalBool(args map[string]any, key string, def bool) (bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalidArg("%s must be a boolean", key)
	}
	return b, nil
}
