package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hr-ops/internal/domain"
)

// ConflictFinder answers whether any employee of a set is already committed
// to a trip or vacation during a date range.
type ConflictFinder interface {
	// FindConflictingEmployee returns the first employee among employeeIDs
	// with a trip or vacation overlapping r (inclusive on both ends), or nil
	// when there is none. Trips are checked before vacations. The records
	// named in opts are ignored so an update never conflicts with itself.
	FindConflictingEmployee(ctx context.Context, employeeIDs []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error)
}

// pgConflictFinder is the Postgres implementation of ConflictFinder.
type pgConflictFinder struct {
	db db
}

// NewConflictFinder constructs a ConflictFinder backed by the provided db connection.
func NewConflictFinder(db db) ConflictFinder {
	return &pgConflictFinder{db: db}
}

func (f *pgConflictFinder) FindConflictingEmployee(ctx context.Context, employeeIDs []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
	const tripQuery = `
		SELECT e.id, e.last_name, e.first_name
		FROM trips t
		JOIN trip_participants tp ON tp.trip_id = t.id
		JOIN employees e ON e.id = tp.employee_id
		WHERE tp.employee_id = ANY(@employee_ids::bigint[])
		  AND t.start_date <= @end_date
		  AND t.end_date >= @start_date
		  AND (@exclude_id::bigint IS NULL OR t.id <> @exclude_id)
		ORDER BY t.start_date, t.id, e.id
		LIMIT 1`

	const vacationQuery = `
		SELECT e.id, e.last_name, e.first_name
		FROM vacations v
		JOIN employees e ON e.id = v.employee_id
		WHERE v.employee_id = ANY(@employee_ids::bigint[])
		  AND v.start_date <= @end_date
		  AND v.end_date >= @start_date
		  AND (@exclude_id::bigint IS NULL OR v.id <> @exclude_id)
		ORDER BY v.start_date, v.id
		LIMIT 1`

	if len(employeeIDs) == 0 {
		return nil, nil
	}

	args := pgx.NamedArgs{
		"employee_ids": employeeIDs,
		"start_date":   r.Start,
		"end_date":     r.End,
		"exclude_id":   opts.ExcludeTripID,
	}
	found, err := f.first(ctx, tripQuery, args)
	if err != nil || found != nil {
		return found, err
	}

	args["exclude_id"] = opts.ExcludeVacationID
	return f.first(ctx, vacationQuery, args)
}

func (f *pgConflictFinder) first(ctx context.Context, q string, args pgx.NamedArgs) (*domain.ConflictingEmployee, error) {
	var c domain.ConflictingEmployee
	err := f.db.QueryRow(ctx, q, args).Scan(&c.ID, &c.LastName, &c.FirstName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.ConflictFinder.FindConflictingEmployee: %w", err)
	}
	return &c, nil
}
