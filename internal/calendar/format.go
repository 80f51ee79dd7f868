package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var fullDatePattern = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)

// FormatError reports a date string that does not match DD.MM.YYYY or names
// a day that does not exist.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: want DD.MM.YYYY", e.Value)
}

// ParseDate parses a DD.MM.YYYY string into a UTC calendar date.
// Components outside the calendar, such as "31.02.2025", are rejected.
func ParseDate(s string) (time.Time, error) {
	m := fullDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, &FormatError{Value: s}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	t, ok := calendarDate(year, month, day)
	if !ok {
		return time.Time{}, &FormatError{Value: s}
	}
	return t, nil
}

// calendarDate builds the UTC date y-m-d and reports false when time.Date
// had to normalise it, i.e. the day does not exist.
func calendarDate(y, m, d int) (time.Time, bool) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	ty, tm, td := t.Date()
	return t, ty == y && int(tm) == m && td == d
}

// FormatDate renders t as DD.MM.
func FormatDate(t time.Time) string {
	return t.Format("02.01")
}

// FormatFullDate renders t as DD.MM.YYYY. It is the inverse of ParseDate.
func FormatFullDate(t time.Time) string {
	return t.Format("02.01.2006")
}
