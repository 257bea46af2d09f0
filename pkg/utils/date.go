package utils

import (
	"time"
)

// DateLayout is the calendar-date format used for cache keys, snapshot file
// names and the upstream "date" query parameter.
const DateLayout = "2006-01-02"

func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

func FormatDate(date time.Time) string {
	return date.UTC().Format(DateLayout)
}

// IsCalendarDate reports whether s is a well-formed YYYY-MM-DD date.
// It says nothing about whether the upstream has data for that day.
func IsCalendarDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}

// NearestSettledDate returns the most recent fully elapsed UTC calendar day
// relative to now: the start of now's UTC day, minus one second. The result
// is always the previous UTC day, including at exactly midnight.
func NearestSettledDate(now time.Time) string {
	u := now.UTC()
	startOfDay := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return FormatDate(startOfDay.Add(-time.Second))
}
