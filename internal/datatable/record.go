package datatable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one row of schema-agnostic field data.
// Columns reference fields by name; a missing field reads as nil.
type Record map[string]any

// Value returns the raw value stored under key.
func (r Record) Value(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	return v, ok
}

// Text returns the value under key as display text.
// Nil and missing values return an empty string.
func (r Record) Text(key string) string {
	v, _ := r.Value(key)
	return toText(v)
}

// List returns the value under key as a slice.
// Non-list values return nil.
func (r Record) List(key string) []any {
	v, _ := r.Value(key)
	switch list := v.(type) {
	case []any:
		return list
	case []Record:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out
	case []map[string]any:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = Record(item)
		}
		return out
	case []string:
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}

// Object returns the value under key as a nested Record.
func (r Record) Object(key string) (Record, bool) {
	v, _ := r.Value(key)
	return asRecord(v)
}

// Time returns the value under key as a time.
// Strings are parsed with the layouts accepted by ParseDate.
func (r Record) Time(key string) (time.Time, bool) {
	v, _ := r.Value(key)
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		return ParseDate(t)
	default:
		return time.Time{}, false
	}
}

// asRecord converts nested object values to a Record.
func asRecord(v any) (Record, bool) {
	switch obj := v.(type) {
	case Record:
		return obj, obj != nil
	case map[string]any:
		return Record(obj), obj != nil
	default:
		return nil, false
	}
}

// dateLayouts lists the layouts recognised as calendar dates.
// Full timestamps come first so the time-of-day is not silently dropped.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
}

// ParseDate parses s as a calendar date or timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toText formats a raw value for display and text matching.
func toText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.DateOnly)
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format(time.DateOnly)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
