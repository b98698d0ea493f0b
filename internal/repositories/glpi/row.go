package glpi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Row is one search result, keyed by field id ("2") or by uid ("User.id")
// depending on uid_cols.
type Row map[string]any

// Int returns the first key holding an integer value.
func (r Row) Int(keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		if n, ok := parseInt(v); ok {
			return n, true
		}
	}
	return 0, false
}

// String returns the first non empty key as text.
func (r Row) String(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// FirstID returns the first numeric id of key. GLPI sends multi valued
// fields (requesters, technicians) as arrays.
func (r Row) FirstID(key string) (int, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if n, ok := parseDigits(item); ok {
				return n, true
			}
		}
		return 0, false
	}
	return parseDigits(v)
}

func parseInt(v any) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func parseDigits(v any) (int, bool) {
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return 0, false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func toInt(v any) int {
	n, ok := parseInt(v)
	if !ok {
		return 0
	}
	return n
}
