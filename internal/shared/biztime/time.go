// Package biztime provides UTC time helpers for quota-day calculations.
// All storage and comparison use UTC; the quota day is the UTC calendar
// date, so daily counters reset at UTC midnight with no scheduled job.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateUTC truncates a time to its UTC calendar date (midnight UTC).
func DateUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayUTC returns today's UTC calendar date (midnight UTC). This is a pure
// function of wall-clock time; local timezones never shift the boundary.
func TodayUTC() time.Time {
	return DateUTC(NowUTC())
}

// DaysAgoUTC returns the UTC calendar date n days before today.
func DaysAgoUTC(n int) time.Time {
	return TodayUTC().AddDate(0, 0, -n)
}

// SameDayUTC reports whether two times fall on the same UTC calendar date.
func SameDayUTC(a, b time.Time) bool {
	return DateUTC(a).Equal(DateUTC(b))
}
