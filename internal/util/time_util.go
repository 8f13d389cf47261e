package util

import (
	"fmt"
	"time"

	"wealthtracker/internal/domain"
)

const layout = "2006-01-02"

func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// ToDate truncates t to its calendar date in UTC.
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(layout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", s, err)
	}
	return t, nil
}

func Today(now time.Time) time.Time {
	return ToDate(now)
}

func Yesterday(now time.Time) time.Time {
	return ToDate(now).AddDate(0, 0, -1)
}

func TodayString(now time.Time) string {
	return FormatDate(Today(now))
}

func YesterdayString(now time.Time) string {
	return FormatDate(Yesterday(now))
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateRange returns every calendar date from start to end, inclusive.
func DateRange(start, end time.Time) ([]time.Time, error) {
	start, end = ToDate(start), ToDate(end)
	if start.After(end) {
		return nil, fmt.Errorf("%s is after %s: %w", FormatDate(start), FormatDate(end), domain.ErrInvalidRange)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	out := make([]time.Time, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out, nil
}

func ParseDateRange(start, end string) ([]time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRange, err.Error())
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRange, err.Error())
	}
	return DateRange(s, e)
}

func StringPtr(s string) *string {
	return &s
}
