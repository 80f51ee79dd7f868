// Package maintenance projects recurring maintenance due dates over a
// multi-year horizon, moving dates that fall on non-business days back to
// the previous business day.
package maintenance

import (
	"slices"
	"time"

	"github.com/pkordes/hr-ops/internal/calendar"
	"github.com/pkordes/hr-ops/internal/domain"
)

// DefaultYears is the projection horizon used when none is given.
const DefaultYears = 10

// Projector computes maintenance schedules against a business calendar.
// It holds no mutable state; Project is a pure function of its inputs.
type Projector struct {
	cal *calendar.Calendar
}

// NewProjector returns a Projector that uses cal to detect non-business days.
func NewProjector(cal *calendar.Calendar) *Projector {
	return &Projector{cal: cal}
}

// baseDate is one occurrence of the shortest-period cadence.
type baseDate struct {
	original time.Time
	actual   time.Time
	moved    bool
}

// Project returns the chronological schedule for services starting at start.
//
// The cadence is driven by the shortest service period. Each occurrence is
// assigned the longest-period service whose period ratio divides the
// occurrence number, falling back to a shortest-period service. Services
// with an unknown frequency are ignored; when none is left the result is empty.
func (p *Projector) Project(start time.Time, services []domain.ServiceDefinition, years int) []domain.ProjectedDate {
	if years <= 0 {
		years = DefaultYears
	}

	valid := make([]domain.ServiceDefinition, 0, len(services))
	for _, s := range services {
		if s.Frequency.Valid() {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return []domain.ProjectedDate{}
	}

	shortest := shortestPeriod(valid)
	bases := p.baseDates(domain.Day(start), shortest, years)

	// Longest period first so that an annual service wins over a quarterly
	// one on occurrences where both divide evenly.
	byPeriod := slices.Clone(valid)
	slices.SortStableFunc(byPeriod, func(a, b domain.ServiceDefinition) int {
		return b.Frequency.Months() - a.Frequency.Months()
	})
	fallback := valid[slices.IndexFunc(valid, func(s domain.ServiceDefinition) bool {
		return s.Frequency.Months() == shortest
	})]

	out := make([]domain.ProjectedDate, 0, len(bases))
	for i, b := range bases {
		out = append(out, domain.ProjectedDate{
			OriginalDate: b.original,
			ActualDate:   b.actual,
			WasMoved:     b.moved,
			Service:      assign(i+1, byPeriod, shortest, fallback),
		})
	}
	return out
}

// baseDates generates the shortest-period cadence. Each planned date is the
// previous planned date plus period months minus one day. The anchor for the
// next step is always the unadjusted planned date so holiday shifts never
// accumulate into the cadence.
func (p *Projector) baseDates(start time.Time, periodMonths, years int) []baseDate {
	horizon := start.AddDate(years, 0, 0)

	var out []baseDate
	last := start
	for {
		planned := last.AddDate(0, periodMonths, -1)
		if planned.After(horizon) {
			break
		}
		last = planned

		b := baseDate{original: planned, actual: planned}
		if p.cal.IsHoliday(planned) {
			b.actual = p.cal.PreviousWorkDay(planned)
			b.moved = true
		}
		out = append(out, b)
	}
	return out
}

func shortestPeriod(services []domain.ServiceDefinition) int {
	shortest := services[0].Frequency.Months()
	for _, s := range services[1:] {
		if m := s.Frequency.Months(); m < shortest {
			shortest = m
		}
	}
	return shortest
}

// assign picks the service for the k-th occurrence (1-indexed).
func assign(k int, byPeriod []domain.ServiceDefinition, shortest int, fallback domain.ServiceDefinition) domain.ServiceDefinition {
	for _, s := range byPeriod {
		ratio := s.Frequency.Months() / shortest
		if ratio > 0 && k%ratio == 0 {
			return s
		}
	}
	return fallback
}
