package domain

import (
	"fmt"
	"time"
)

// Vacation is a single employee's leave over an inclusive date range.
// Vacations share the conflict space with trips.
type Vacation struct {
	ID         int64
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
}

// Range returns the vacation's inclusive date range.
func (v Vacation) Range() DateRange {
	return NewDateRange(v.StartDate, v.EndDate)
}

// Normalize truncates dates to calendar days.
func (v Vacation) Normalize() Vacation {
	if !v.StartDate.IsZero() {
		v.StartDate = Day(v.StartDate)
	}
	if !v.EndDate.IsZero() {
		v.EndDate = Day(v.EndDate)
	}
	return v
}

// Validate checks the vacation's business rules.
func (v Vacation) Validate() error {
	if v.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee_id is required", ErrValidation)
	}
	return v.Range().Validate()
}

// ConflictOptions excludes the record being edited from a conflict check so
// that an update never conflicts with its own previous version.
type ConflictOptions struct {
	ExcludeTripID     *int64
	ExcludeVacationID *int64
}
