package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// textValues flattens a field value into the strings it can be matched by.
func textValues(v any) []string {
	switch typed := v.(type) {
	case nil:
		return nil
	case string:
		return []string{typed}
	case []string:
		return typed
	case bool:
		return []string{strconv.FormatBool(typed)}
	case int:
		return []string{strconv.Itoa(typed)}
	case int64:
		return []string{strconv.FormatInt(typed, 10)}
	case float64:
		return []string{strconv.FormatFloat(typed, 'f', -1, 64)}
	case time.Time:
		if typed.IsZero() {
			return nil
		}
		return []string{typed.Format(time.RFC3339)}
	case fmt.Stringer:
		return []string{typed.String()}
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, textValues(item)...)
		}
		return out
	default:
		return []string{fmt.Sprint(typed)}
	}
}

// truthy reports whether a field value counts as set for booleanFlag predicates.
func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		s := strings.ToLower(strings.TrimSpace(typed))
		return s != "" && s != "false" && s != "0"
	case int:
		return typed != 0
	case int64:
		return typed != 0
	case float64:
		return typed != 0
	case []string:
		return len(typed) > 0
	case []any:
		return len(typed) > 0
	case time.Time:
		return !typed.IsZero()
	default:
		return true
	}
}

// numeric returns v as a float64 when it is a number.
func numeric(v any) (float64, bool) {
	switch typed := v.(type) {
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case float64:
		return typed, true
	default:
		return 0, false
	}
}

// compareValues orders two present field values.
func compareValues(a, b any) int {
	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(sortKey(a), sortKey(b))
}

func sortKey(v any) string {
	return strings.ToLower(strings.Join(textValues(v), " "))
}

// isMissing reports whether v carries no value for sorting.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	if t, ok := v.(time.Time); ok {
		return t.IsZero()
	}
	return false
}
