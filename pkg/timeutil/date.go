// Package timeutil holds the calendar and time-of-day arithmetic used by the
// scheduling engine. All date handling goes through this package so that
// day-of-week and date-range iteration use a single UTC calendar end to end.
package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the canonical date format used across the engine.
const DateLayout = "2006-01-02"

// NormalizeDate strips the time-of-day and location from t, returning the
// same calendar date at midnight UTC. Every date stored or compared by the
// engine passes through here first.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a date in DateLayout form into a UTC-normalized time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NormalizeDate(t), nil
}

// FormatDate formats a date in DateLayout form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ISOWeekday returns the ISO day of week for a date: Monday=1 through
// Sunday=7. The date is UTC-normalized before the weekday is read, so
// callers cannot pick up an off-by-one from local-time parsing.
func ISOWeekday(t time.Time) int {
	wd := int(NormalizeDate(t).Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// DatesBetween returns every calendar date from start through end inclusive,
// each normalized to midnight UTC. Returns nil when end precedes start.
func DatesBetween(start, end time.Time) []time.Time {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	if end.Before(start) {
		return nil
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return NormalizeDate(a).Equal(NormalizeDate(b))
}
