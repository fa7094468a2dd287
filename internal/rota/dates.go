package rota

import (
	"errors"
	"time"
)

// DateLayout is the calendar day format used throughout the planner
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for anything that is not a YYYY-MM-DD day
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate parses a planner day in UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// FormatDate renders the calendar day of t
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a valid day by n days
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// WeekStart returns the Monday of the week containing date
func WeekStart(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	offset := (int(t.Weekday()) + 6) % 7
	return FormatDate(t.AddDate(0, 0, -offset))
}

// WeekDays returns the seven days of the week containing date, Monday first
func WeekDays(date string) []string {
	start := WeekStart(date)
	days := make([]string, 7)
	for i := range days {
		days[i] = AddDays(start, i)
	}
	return days
}
