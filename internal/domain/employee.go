package domain

import (
	"fmt"
	"strings"
)

// Employee is a person who can take part in trips and take vacations.
// Patronymic is optional and stored as an empty string when absent.
type Employee struct {
	ID         int64
	LastName   string
	FirstName  string
	Patronymic string
	Position   string
}

// Normalize trims all name parts.
func (e Employee) Normalize() Employee {
	e.LastName = strings.TrimSpace(e.LastName)
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.Patronymic = strings.TrimSpace(e.Patronymic)
	e.Position = strings.TrimSpace(e.Position)
	return e
}

// Validate checks required fields.
func (e Employee) Validate() error {
	if e.LastName == "" {
		return fmt.Errorf("%w: last_name is required", ErrValidation)
	}
	if e.FirstName == "" {
		return fmt.Errorf("%w: first_name is required", ErrValidation)
	}
	return nil
}

// FullName joins last, first and patronymic names.
func (e Employee) FullName() string {
	return strings.TrimSpace(strings.Join([]string{e.LastName, e.FirstName, e.Patronymic}, " "))
}

// ShortName renders "Lastname F. P." as used in reports.
func (e Employee) ShortName() string {
	var b strings.Builder
	b.WriteString(e.LastName)
	if r := []rune(e.FirstName); len(r) > 0 {
		b.WriteString(" " + string(r[0]) + ".")
	}
	if r := []rune(e.Patronymic); len(r) > 0 {
		b.WriteString(" " + string(r[0]) + ".")
	}
	return b.String()
}

// ConflictingEmployee identifies the employee that blocks a booking.
// It is only used to build a human-readable message.
type ConflictingEmployee struct {
	ID        int64
	LastName  string
	FirstName string
}

// DisplayName renders "Lastname Firstname".
func (c ConflictingEmployee) DisplayName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}

// EmployeeProfile is an employee together with every trip and vacation
// they are part of.
type EmployeeProfile struct {
	Employee  Employee
	Trips     []Trip
	Vacations []Vacation
}
