// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// AtoiDefault converts a string to an int using strconv.Atoi.
// If the string is empty or cannot be parsed as an integer,
// it returns the provided default value instead.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// NormalizePhone strips every non-digit rune from s, returning the
// digits-only form used as the submitter identifier. An input with no digits
// normalizes to "".
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Truthy interprets a loosely-typed boolean as sent by webhook sources.
// Accepted: native bools, and the strings true/false, yes/no, 1/0
// (case-insensitive). Numbers decode as float64 from JSON; any non-zero
// value counts as true. Everything else, including nil, is false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes":
			return true
		}
		return false
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return false
	}
}

// ParseTimestamp interprets a webhook timestamp that may arrive as an ISO
// 8601 / RFC 3339 string or as a Unix epoch in seconds or milliseconds
// (either numeric or numeric-string). Epochs above 1e12 are treated as
// milliseconds. A zero, nil, or unparseable value returns ok=false and the
// caller should substitute the current time.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return epochToTime(n)
		}
		return time.Time{}, false
	case float64:
		return epochToTime(int64(t))
	case int64:
		return epochToTime(t)
	case int:
		return epochToTime(int64(t))
	default:
		return time.Time{}, false
	}
}

// epochToTime converts a Unix epoch to UTC time, auto-detecting
// second vs millisecond precision.
func epochToTime(n int64) (time.Time, bool) {
	if n <= 0 {
		return time.Time{}, false
	}
	if n > 1_000_000_000_000 { // milliseconds
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}
