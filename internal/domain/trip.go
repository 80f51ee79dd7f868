// Package domain contains the core data types for the HR operations service.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Transport is the means of travel for a trip. The empty value means unspecified.
type Transport string

const (
	TransportNone  Transport = ""
	TransportCar   Transport = "car"
	TransportTrain Transport = "train"
	TransportPlane Transport = "plane"
)

// Valid reports whether t is one of the known transports or unspecified.
func (t Transport) Valid() bool {
	switch t {
	case TransportNone, TransportCar, TransportTrain, TransportPlane:
		return true
	}
	return false
}

// Trip is one business trip to one destination over an inclusive date range.
// A trip is the aggregate root for its participant set: participants are
// always written together with the trip row and replaced as a whole.
type Trip struct {
	ID             int64
	Destination    string
	OrganizationID *int64 // nil when the trip is not tied to an organization
	StartDate      time.Time
	EndDate        time.Time
	Transport      Transport

	// ParticipantIDs is a set of employee IDs, kept sorted and unique.
	ParticipantIDs []int64
}

// Range returns the trip's inclusive date range.
func (t Trip) Range() DateRange {
	return NewDateRange(t.StartDate, t.EndDate)
}

// Normalize trims text fields, truncates dates to calendar days and turns the
// participant list into a sorted set.
func (t Trip) Normalize() Trip {
	t.Destination = strings.TrimSpace(t.Destination)
	if !t.StartDate.IsZero() {
		t.StartDate = Day(t.StartDate)
	}
	if !t.EndDate.IsZero() {
		t.EndDate = Day(t.EndDate)
	}
	t.ParticipantIDs = NormalizeIDs(t.ParticipantIDs)
	return t
}

// Validate checks the trip's business rules. Call it on a normalised trip.
func (t Trip) Validate() error {
	if t.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if t.OrganizationID != nil && *t.OrganizationID <= 0 {
		return fmt.Errorf("%w: organization_id must be positive", ErrValidation)
	}
	if !t.Transport.Valid() {
		return fmt.Errorf("%w: unknown transport %q", ErrValidation, t.Transport)
	}
	if len(t.ParticipantIDs) == 0 {
		return fmt.Errorf("%w: at least one participant is required", ErrValidation)
	}
	for _, id := range t.ParticipantIDs {
		if id <= 0 {
			return fmt.Errorf("%w: participant ids must be positive", ErrValidation)
		}
	}
	return t.Range().Validate()
}

// TripFilter narrows a trip listing. Nil fields are not applied.
type TripFilter struct {
	Year       *int
	EmployeeID *int64
}
