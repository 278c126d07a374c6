package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by every timestamp.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// MustDate parses a date and returns the zero time when it is malformed.
func MustDate(value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DaysBetween returns the number of calendar days from a to b (negative when
// b is before a).
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// DaysUntilInclusive counts the days from now up to and including due, or 0
// once due has passed.
func DaysUntilInclusive(now, due time.Time) int {
	if due.Before(now) {
		return 0
	}
	return DaysBetween(now, due) + 1
}

// PreviousMonth returns the year and month preceding t.
func PreviousMonth(t time.Time) (int, time.Month) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	return prev.Year(), prev.Month()
}
