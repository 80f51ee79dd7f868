package domain

import (
	"fmt"
	"strings"
	"time"
)

// DigitalSignature is an issued electronic signature key (ЭЦП) and its
// validity period. ECPNumber is unique across all signatures.
type DigitalSignature struct {
	ID        int64
	FullName  string
	Position  string
	INN       string
	ECPNumber string
	ValidFrom time.Time
	ValidTo   time.Time
}

// Normalize trims text fields and truncates the validity dates.
func (s DigitalSignature) Normalize() DigitalSignature {
	s.FullName = strings.TrimSpace(s.FullName)
	s.Position = strings.TrimSpace(s.Position)
	s.INN = strings.TrimSpace(s.INN)
	s.ECPNumber = strings.TrimSpace(s.ECPNumber)
	if !s.ValidFrom.IsZero() {
		s.ValidFrom = Day(s.ValidFrom)
	}
	if !s.ValidTo.IsZero() {
		s.ValidTo = Day(s.ValidTo)
	}
	return s
}

// Validate checks required fields, the INN shape and the validity period.
func (s DigitalSignature) Validate() error {
	switch {
	case s.FullName == "":
		return fmt.Errorf("%w: full_name is required", ErrValidation)
	case s.ECPNumber == "":
		return fmt.Errorf("%w: ecp_number is required", ErrValidation)
	case s.ValidFrom.IsZero() || s.ValidTo.IsZero():
		return fmt.Errorf("%w: valid_from and valid_to are required", ErrValidation)
	}
	if s.INN != "" && !isINN(s.INN) {
		return fmt.Errorf("%w: inn must be 10 or 12 digits", ErrValidation)
	}
	if s.ValidTo.Before(s.ValidFrom) {
		return fmt.Errorf("%w: valid_to must not be before valid_from", ErrValidation)
	}
	return nil
}

// Expiry classifies the signature by its end date.
func (s DigitalSignature) Expiry(today time.Time) ExpiryState {
	return ExpiryOf(s.ValidTo, today)
}

func isINN(s string) bool {
	if len(s) != 10 && len(s) != 12 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
