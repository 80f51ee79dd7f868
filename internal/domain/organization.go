package domain

import (
	"fmt"
	"strings"
)

// Organization is a counterparty a trip can be made to.
type Organization struct {
	ID   int64
	Name string
	City string
}

// Normalize trims text fields.
func (o Organization) Normalize() Organization {
	o.Name = strings.TrimSpace(o.Name)
	o.City = strings.TrimSpace(o.City)
	return o
}

// Validate checks required fields.
func (o Organization) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}
