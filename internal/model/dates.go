package model

import "time"

// Due dates have date-only granularity: every comparison in the stats
// aggregator and the view composers goes through the ISO date string, never
// the full timestamp.

const ISODate = "2006-01-02"

// DateOnly formats a timestamp as an ISO date string.
func DateOnly(t time.Time) string { return t.Format(ISODate) }

// SameDay reports date-level equality.
func SameDay(a, b time.Time) bool { return DateOnly(a) == DateOnly(b) }

// BeforeDay reports whether a falls on a strictly earlier date than b.
func BeforeDay(a, b time.Time) bool { return DateOnly(a) < DateOnly(b) }

// StartOfDay truncates a timestamp to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfWeek returns the last day of the week containing t, weeks ending on
// Sunday. If t is a Sunday the week ends that same day.
func EndOfWeek(t time.Time) time.Time {
	days := (7 - int(t.Weekday())) % 7
	return StartOfDay(t).AddDate(0, 0, days)
}
