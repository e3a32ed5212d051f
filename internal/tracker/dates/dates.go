// Package dates holds the calendar-day helpers used across the tracker.
// Dates are stored as YYYY-MM-DD strings and compared as calendar days in a single location.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Normalize accepts YYYY-MM-DD or an RFC3339 timestamp and returns the YYYY-MM-DD part.
func Normalize(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return t.Format(Layout), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(Layout), true
	}
	return "", false
}

// Parse returns midnight of the given date in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	normalized, ok := Normalize(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date: [%s]", s)
	}
	t, err := time.ParseInLocation(Layout, normalized, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date [%s]: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func Today(now time.Time, loc *time.Location) string {
	return Format(now.In(loc))
}

// AddDays moves a calendar day, not a 24h duration, so DST shifts are irrelevant.
func AddDays(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysBetween is the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	au := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bu := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// DaysFromNow is positive when date lies in the future.
func DaysFromNow(date string, now time.Time, loc *time.Location) (int, error) {
	t, err := Parse(date, loc)
	if err != nil {
		return 0, err
	}
	return DaysBetween(StartOfDay(now, loc), t), nil
}

// StartOfWeek returns the Sunday midnight that opens t's calendar week.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	day := StartOfDay(t, loc)
	return AddDays(day, -int(day.Weekday()))
}
