// utils/dates.go
package utils

import "time"

// DateOnly normalizes a timestamp to a calendar date (UTC midnight).
// Reservation dates are stored and compared in this form.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// ParseMonth parses a YYYY-MM month string, returning its first day.
func ParseMonth(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01", s, time.UTC)
}

// ParseDateTime parses a datetime in RFC3339 or the mini-app's short
// "2006-01-02T15:04" form.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
}

// CombineDateTime merges a date with an HH:MM clock string. An empty or
// malformed clock string yields midnight.
func CombineDateTime(date time.Time, clock string) time.Time {
	d := DateOnly(date)
	if t, err := time.Parse("15:04", clock); err == nil {
		return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	return d
}

// DaysInMonth returns the number of calendar days in the month of t.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
