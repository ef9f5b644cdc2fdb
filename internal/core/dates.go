package core

import (
	"strings"
	"time"
)

// DayLabel is the canonical grouping and display format for calendar days.
const DayLabel = "02/01/2006"

// dateStrategy attempts one interpretation of a raw date string. Strategies
// are pure and report success explicitly so they can be chained in order.
type dateStrategy func(string) (time.Time, bool)

// normalization order: direct timestamp parse first, then the two delimited
// day-first encodings. Anything else falls back to the injected "now".
var dateStrategies = []dateStrategy{
	parseTimestamp,
	delimitedDayFirst("/"),
	delimitedDayFirst("-"),
}

// NormalizeDate reduces a raw date value to a concrete calendar date.
// Empty and unparseable input falls back to now; a record with a broken
// date still shows up in today's listing.
func NormalizeDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, parse := range dateStrategies {
		if t, ok := parse(raw); ok {
			return t
		}
	}
	return now
}

// FormatDay renders a normalized date as DD/MM/YYYY, the key used for
// day bucketing and display.
func FormatDay(t time.Time) string {
	return t.Format(DayLabel)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// delimitedDayFirst builds a strategy for DD<sep>MM<sep>YYYY input. The
// day-first assumption is deliberate: stored values come from day-first
// locales and no locale-aware disambiguation is attempted.
func delimitedDayFirst(sep string) dateStrategy {
	return func(s string) (time.Time, bool) {
		if !strings.Contains(s, sep) {
			return time.Time{}, false
		}
		parts := strings.Split(s, sep)
		if len(parts) != 3 {
			return time.Time{}, false
		}
		iso := parts[2] + "-" + pad2(parts[1]) + "-" + pad2(parts[0])
		t, err := time.Parse("2006-01-02", iso)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
