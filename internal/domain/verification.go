package domain

import (
	"fmt"
	"strings"
	"time"
)

// MeasuringInstrument is equipment under periodic metrological verification.
// NextVerification is the date the current certificate runs out.
type MeasuringInstrument struct {
	ID               int64
	Name             string
	Type             string
	SerialNumber     string
	InventoryNumber  string
	LastVerification time.Time
	NextVerification time.Time
	Notes            string
}

// Normalize trims text fields and truncates the verification dates.
func (m MeasuringInstrument) Normalize() MeasuringInstrument {
	m.Name = strings.TrimSpace(m.Name)
	m.Type = strings.TrimSpace(m.Type)
	m.SerialNumber = strings.TrimSpace(m.SerialNumber)
	m.InventoryNumber = strings.TrimSpace(m.InventoryNumber)
	m.Notes = strings.TrimSpace(m.Notes)
	if !m.LastVerification.IsZero() {
		m.LastVerification = Day(m.LastVerification)
	}
	if !m.NextVerification.IsZero() {
		m.NextVerification = Day(m.NextVerification)
	}
	return m
}

// Validate checks required fields and that the next verification does not
// precede the last one.
func (m MeasuringInstrument) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case m.LastVerification.IsZero() || m.NextVerification.IsZero():
		return fmt.Errorf("%w: last_verification and next_verification are required", ErrValidation)
	case m.NextVerification.Before(m.LastVerification):
		return fmt.Errorf("%w: next_verification is before last_verification", ErrValidation)
	}
	return nil
}

// Expiry classifies the instrument by its next verification date.
func (m MeasuringInstrument) Expiry(today time.Time) ExpiryState {
	return ExpiryOf(m.NextVerification, today)
}
