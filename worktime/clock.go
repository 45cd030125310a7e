package worktime

import "time"

// =============================================================================
// CIVIL TIME HELPERS
// =============================================================================
// Timestamps in this engine are civil wall-clock values. They are carried in
// time.Time pinned to UTC so comparisons and arithmetic behave like plain
// calendar math, with no DST or zone effects.

const (
	minutesPerDay = 24 * 60

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// Date builds a civil date (midnight UTC).
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateTime builds a civil date-time with minute precision.
func DateTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// DayOf truncates a timestamp to its calendar day.
func DayOf(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// IsWeekend reports whether the day is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// StartOfMonth returns the first day of the timestamp's month.
func StartOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), 1)
}

// EndOfMonth returns the last day of the timestamp's month.
func EndOfMonth(t time.Time) time.Time {
	return Date(t.Year(), t.Month()+1, 1).AddDate(0, 0, -1)
}

// truncateToMinute drops seconds and finer. The engine's resolution is one
// minute; anything below that is noise from the boundary.
func truncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}
