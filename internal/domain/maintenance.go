package domain

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is how often a maintenance service recurs.
type Frequency string

const (
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencySemiAnnual Frequency = "semi_annual"
	FrequencyAnnual     Frequency = "annual"
	FrequencyBiennial   Frequency = "biennial"
)

// Months returns the recurrence period in months, or 0 for an unknown frequency.
func (f Frequency) Months() int {
	switch f {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	case FrequencySemiAnnual:
		return 6
	case FrequencyAnnual:
		return 12
	case FrequencyBiennial:
		return 24
	}
	return 0
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool { return f.Months() > 0 }

// ServiceDefinition is a recurring maintenance requirement of one equipment item.
type ServiceDefinition struct {
	ID          int64
	EquipmentID int64
	Name        string
	Frequency   Frequency
}

// Equipment is a maintained asset. StartDate is its commissioning date and
// anchors the maintenance schedule.
type Equipment struct {
	ID           int64
	Name         string
	SerialNumber string
	Location     string
	StartDate    time.Time
	Services     []ServiceDefinition
}

// Normalize trims text fields and truncates the commissioning date.
func (e Equipment) Normalize() Equipment {
	e.Name = strings.TrimSpace(e.Name)
	e.SerialNumber = strings.TrimSpace(e.SerialNumber)
	e.Location = strings.TrimSpace(e.Location)
	if !e.StartDate.IsZero() {
		e.StartDate = Day(e.StartDate)
	}
	services := make([]ServiceDefinition, len(e.Services))
	for i, s := range e.Services {
		s.Name = strings.TrimSpace(s.Name)
		services[i] = s
	}
	e.Services = services
	return e
}

// Validate checks required fields and service frequencies.
func (e Equipment) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if e.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", ErrValidation)
	}
	for _, s := range e.Services {
		if !s.Frequency.Valid() {
			return fmt.Errorf("%w: unknown frequency %q", ErrValidation, s.Frequency)
		}
	}
	return nil
}

// ProjectedDate is one computed maintenance due date. It is derived on demand
// and never stored.
type ProjectedDate struct {
	// OriginalDate is the calendar-computed date; it may fall on a holiday.
	OriginalDate time.Time
	// ActualDate is OriginalDate moved back to the previous business day
	// when OriginalDate is not a business day.
	ActualDate time.Time
	WasMoved   bool
	Service    ServiceDefinition
}
