package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Named output layouts accepted by Format
const (
	ISO8601  = "2006-01-02T15:04:05.000-0700"
	DateOnly = "2006-01-02"
	Display  = "Mon, 02 Jan 2006 15:04:05 MST"
)

// layouts that carry their own UTC offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	time.RFC1123Z,
	time.RFC1123,
}

// layouts interpreted in the caller's location
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006",
}

// FormatISO8601 formats date to ISO 8601 format with timezone
// Example: 2025-01-15T10:00:00.000+0000
func FormatISO8601(date time.Time) string {
	return date.Format(ISO8601)
}

// Format formats t with a named layout ("iso8601", "rfc3339", "date",
// "display") or, failing that, treats pattern as a Go reference layout.
// An empty pattern means RFC 3339.
func Format(t time.Time, pattern string) string {
	switch strings.ToLower(pattern) {
	case "", "rfc3339":
		return t.Format(time.RFC3339)
	case "iso8601":
		return FormatISO8601(t)
	case "date":
		return t.Format(DateOnly)
	case "display":
		return t.Format(Display)
	default:
		return t.Format(pattern)
	}
}

// ParseInstant parses an absolute time string.
// Strings with an explicit offset keep it; date-only and naive date-times
// are interpreted in loc. "@<seconds>" and "@<seconds>.<millis>" are Unix
// epoch values. Results are truncated to millisecond precision.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}
	if loc == nil {
		loc = time.UTC
	}

	if strings.HasPrefix(value, "@") {
		return parseEpoch(value[1:])
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Truncate(time.Millisecond), nil
		}
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Truncate(time.Millisecond), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time string: %s", value)
}

func parseEpoch(value string) (time.Time, error) {
	secPart, msPart, hasFraction := strings.Cut(value, ".")

	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch seconds %q: %w", value, err)
	}

	var ms int64
	if hasFraction {
		if len(msPart) == 0 || len(msPart) > 3 {
			return time.Time{}, fmt.Errorf("invalid epoch fraction %q", value)
		}
		msPart += strings.Repeat("0", 3-len(msPart))
		if ms, err = strconv.ParseInt(msPart, 10, 64); err != nil {
			return time.Time{}, fmt.Errorf("invalid epoch fraction %q: %w", value, err)
		}
		if sec < 0 || strings.HasPrefix(secPart, "-") {
			ms = -ms
		}
	}

	return time.UnixMilli(sec*1000 + ms).UTC(), nil
}
