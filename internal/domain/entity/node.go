package entity

import (
	"strconv"
	"strings"
)

// Node helpers read decoded response trees (map[string]any / []any).
// Missing keys and unexpected types yield zero values, never panics.

func AsMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func AsSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// Dig follows keys through nested objects and returns nil as soon as a
// step is missing or not an object.
func Dig(v any, keys ...string) any {
	cur := v
	for _, k := range keys {
		m := AsMap(cur)
		if m == nil {
			return nil
		}
		cur = m[k]
	}
	return cur
}

func DigMap(v any, keys ...string) map[string]any {
	return AsMap(Dig(v, keys...))
}

func DigSlice(v any, keys ...string) []any {
	return AsSlice(Dig(v, keys...))
}

func DigString(v any, keys ...string) string {
	s, _ := Dig(v, keys...).(string)
	return s
}

// Has reports whether v is an object carrying key with a non-nil value.
func Has(v any, key string) bool {
	m := AsMap(v)
	return m != nil && m[key] != nil
}

// Text flattens an InnerTube text object: simpleText, or the concatenation of runs[].text.
func Text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["simpleText"].(string); ok {
			return s
		}
		if s, ok := t["content"].(string); ok {
			return s
		}
		var b strings.Builder
		for _, r := range AsSlice(t["runs"]) {
			if s, ok := AsMap(r)["text"].(string); ok {
				b.WriteString(s)
			}
		}
		return b.String()
	}
	return ""
}

// Number accepts JSON numbers and numeric strings.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
