package domain

import "time"

// ExpiringWindowDays is how far ahead of its end date a dated record is
// reported as expiring.
const ExpiringWindowDays = 30

// ExpiryState classifies a dated record against today.
type ExpiryState string

const (
	ExpiryValid    ExpiryState = "valid"
	ExpiryExpiring ExpiryState = "expiring"
	ExpiryExpired  ExpiryState = "expired"
)

// ExpiryOf classifies a record whose validity ends on until. The end day
// itself is still valid.
func ExpiryOf(until, today time.Time) ExpiryState {
	until, today = Day(until), Day(today)
	switch {
	case until.Before(today):
		return ExpiryExpired
	case !until.After(today.AddDate(0, 0, ExpiringWindowDays)):
		return ExpiryExpiring
	}
	return ExpiryValid
}

// DaysLeft is the number of calendar days from today to until; negative
// once until has passed.
func DaysLeft(until, today time.Time) int {
	return int(Day(until).Sub(Day(today)).Hours() / 24)
}

// ExpiryStats counts records per ExpiryState.
type ExpiryStats struct {
	Total    int
	Valid    int
	Expiring int
	Expired  int
}

// Add counts one record in state.
func (s *ExpiryStats) Add(state ExpiryState) {
	s.Total++
	switch state {
	case ExpiryValid:
		s.Valid++
	case ExpiryExpiring:
		s.Expiring++
	case ExpiryExpired:
		s.Expired++
	}
}
