package timecalc

import (
	"fmt"
	"math"
	"time"
)

// WeekOf returns the ISO-8601 (year, week number) pair for a date.
// Dates around the year boundary can belong to the other year's week;
// the returned year is the ISO week-year, not the calendar year.
func WeekOf(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// WeekLabel returns a label like "2026-W09".
func WeekLabel(year, week int) string {
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock parses a wall-clock time in HH:MM form and places it on
// the given date in the local timezone.
func ParseClock(s string, on time.Time) (time.Time, error) {
	c, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return time.Date(on.Year(), on.Month(), on.Day(), c.Hour(), c.Minute(), 0, 0, time.Local), nil
}

// FormatHours formats fractional hours as a human-readable string like
// "8h 30m" or "45m".
func FormatHours(hours float64) string {
	minutes := int(math.Round(hours * 60))
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatClock formats an optional timestamp as HH:MM, or "-" when unset.
func FormatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

// FormatTimestamp formats an optional timestamp with date and time, or
// "-" when unset.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
