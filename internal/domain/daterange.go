package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
// All dates in the domain are normalised with Day so that equality and
// ordering compare calendar days only.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is a closed interval of calendar dates. Both ends are inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a normalised range. It does not validate ordering;
// call Validate for that.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

// Validate checks that both dates are set and Start is not after End.
func (r DateRange) Validate() error {
	if r.Start.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrValidation)
	}
	if r.End.IsZero() {
		return fmt.Errorf("%w: end_date is required", ErrValidation)
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrValidation)
	}
	return nil
}

// Overlaps reports whether r and other share at least one calendar day.
// Ranges that only touch at a boundary day overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Days returns the number of calendar days in the range, counting both ends.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether day d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
