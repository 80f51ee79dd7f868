package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a business uniqueness
// rule: a double-booked employee or a duplicate name.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrInUse is returned when a record cannot be deleted because other records
// still reference it (e.g. an employee who participates in trips).
var ErrInUse = errors.New("in use")

// ConflictError reports that a participant is already committed to a trip or
// vacation in an overlapping period. It unwraps to ErrConflict.
type ConflictError struct {
	Employee ConflictingEmployee
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("employee %s is already busy in the requested period", e.Employee.DisplayName())
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
