package value

import (
	"strings"
	"time"
)

// DayLayout is the calendar-day key format; keys sort chronologically.
const DayLayout = time.DateOnly

//nolint:gochecknoglobals
var dayLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	time.DateTime,
}

// ParseDay parses an ISO-8601 date or timestamp and truncates it to a UTC
// calendar day. Timestamps with an offset are converted to UTC first.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dayLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		t = t.UTC()

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// DayKey formats t as a calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysBetween returns the number of whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24) //nolint:mnd
}

// WeekStart returns the Monday of t's ISO week. Sunday belongs to the week
// that started six days earlier.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 //nolint:mnd
	return t.AddDate(0, 0, -offset)
}
