package envelope

import (
	"encoding/json"
	"math"
	"time"
)

// normalizeTimes replaces every timestamp representation found in value with
// its RFC 3339 string. It recurses into maps and slices.
func normalizeTimes(value any) any {
	switch v := value.(type) {
	case time.Time:
		return formatTime(v)
	case *time.Time:
		if v == nil {
			return nil
		}
		return formatTime(*v)
	case map[string]any:
		if t, ok := timestampWrapper(v); ok {
			return formatTime(t)
		}
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = normalizeTimes(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeTimes(item)
		}
		return out
	}
	return value
}

// timestampWrapper recognizes {seconds, nanoseconds} objects, with or
// without a leading underscore on both keys.
func timestampWrapper(m map[string]any) (time.Time, bool) {
	if len(m) != 2 {
		return time.Time{}, false
	}

	for _, keys := range [][2]string{{"seconds", "nanoseconds"}, {"_seconds", "_nanoseconds"}} {
		sec, okSec := asInt64(m[keys[0]])
		nsec, okNsec := asInt64(m[keys[1]])
		if okSec && okNsec {
			return time.Unix(sec, nsec), true
		}
	}
	return time.Time{}, false
}

func asInt64(value any) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
