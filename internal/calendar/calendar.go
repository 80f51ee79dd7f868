// Package calendar answers business-day questions: whether a date is a
// weekend or a listed public holiday, and which business day precedes it.
//
// A Calendar is immutable once built and safe for concurrent use.
package calendar

import (
	"slices"
	"time"
)

type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{y, m, d}
}

// Calendar holds per-year public holiday lists. Years without a list have no
// holidays beyond weekends.
type Calendar struct {
	years map[int]map[dateKey]struct{}
}

// New builds a Calendar from per-year holiday lists.
func New(holidays map[int][]time.Time) *Calendar {
	c := &Calendar{years: make(map[int]map[dateKey]struct{}, len(holidays))}
	for year, days := range holidays {
		c.setYear(year, days)
	}
	return c
}

// Default returns the Calendar built from the bundled holiday tables.
func Default() *Calendar {
	return defaultCalendar
}

// WithYear returns a copy of c whose holiday list for year is replaced by days.
func (c *Calendar) WithYear(year int, days []time.Time) *Calendar {
	out := &Calendar{years: make(map[int]map[dateKey]struct{}, len(c.years)+1)}
	for y, set := range c.years {
		out.years[y] = set
	}
	out.setYear(year, days)
	return out
}

func (c *Calendar) setYear(year int, days []time.Time) {
	set := make(map[dateKey]struct{}, len(days))
	for _, d := range days {
		if d.Year() == year {
			set[keyOf(d)] = struct{}{}
		}
	}
	c.years[year] = set
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether t is not a business day: a weekend day or a
// listed public holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	if IsWeekend(t) {
		return true
	}
	set, ok := c.years[t.Year()]
	if !ok {
		return false
	}
	_, ok = set[keyOf(t)]
	return ok
}

// PreviousWorkDay returns the nearest business day strictly before t.
// The loop terminates because every week contains business days.
func (c *Calendar) PreviousWorkDay(t time.Time) time.Time {
	prev := t.AddDate(0, 0, -1)
	for c.IsHoliday(prev) {
		prev = prev.AddDate(0, 0, -1)
	}
	return prev
}

// Holidays returns the listed public holidays of year in chronological order.
// Weekends are not included unless they are listed explicitly.
func (c *Calendar) Holidays(year int) []time.Time {
	set := c.years[year]
	out := make([]time.Time, 0, len(set))
	for k := range set {
		out = append(out, time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC))
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// Years returns the years that carry a holiday list, ascending.
func (c *Calendar) Years() []int {
	out := make([]int, 0, len(c.years))
	for y := range c.years {
		out = append(out, y)
	}
	slices.Sort(out)
	return out
}
