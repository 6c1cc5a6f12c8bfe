package payroll

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDayChangeHour is used when the store has no valid day change time.
const DefaultDayChangeHour = 5

var weekdayKanji = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// ParseDayChangeHour extracts the hour from an "HH:MM" setting.
// Anything that is not an hour in 0..23 falls back to DefaultDayChangeHour.
func ParseDayChangeHour(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultDayChangeHour
	}

	hourPart, _, _ := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return DefaultDayChangeHour
	}
	return hour
}

// BusinessDate returns midnight of the business day t belongs to.
// Events before dayChangeHour (local time) count toward the previous calendar date.
func BusinessDate(t time.Time, dayChangeHour int, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	if t.Hour() < dayChangeHour {
		t = t.AddDate(0, 0, -1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateKey formats a business date as YYYY-MM-DD.
func DateKey(d time.Time) string {
	return d.Format("2006-01-02")
}

// DateLabel formats a business date for display, e.g. "10/17(土)".
func DateLabel(d time.Time) string {
	return d.Format("1/2") + "(" + weekdayKanji[d.Weekday()] + ")"
}
