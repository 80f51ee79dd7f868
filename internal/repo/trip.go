package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hr-ops/internal/domain"
)

// TripRepo defines the persistence operations for the Trip aggregate: one
// trips row plus its trip_participants links.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts the trip row and one participant link per employee in a
	// single transaction and returns the persisted trip with participants.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip with its participants.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Trip, error)

	// List returns trips matching filter ordered by start_date descending.
	List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)

	// Update overwrites the trip's scalar fields and replaces its entire
	// participant set in one transaction.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip; its participant links go with it through the
	// ON DELETE CASCADE foreign key. Returns the number of deleted trips.
	Delete(ctx context.Context, id int64) (int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const selectTrips = `
	SELECT t.id, t.destination, t.organization_id, t.start_date, t.end_date, t.transport,
	       COALESCE(array_agg(tp.employee_id ORDER BY tp.employee_id)
	                FILTER (WHERE tp.employee_id IS NOT NULL), '{}') AS participants
	FROM trips t
	LEFT JOIN trip_participants tp ON tp.trip_id = t.id`

// Create inserts the trip and its participant links atomically.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (destination, organization_id, start_date, end_date, transport)
		VALUES (@destination, @organization_id, @start_date, @end_date, @transport)
		RETURNING id`

	var result domain.Trip
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, q, tripArgs(trip)).Scan(&id); err != nil {
			return classify(err, domain.ErrValidation)
		}
		if err := insertParticipants(ctx, tx, id, trip.ParticipantIDs); err != nil {
			return err
		}
		var err error
		result, err = getTrip(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	result, err := getTrip(ctx, r.db, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips ordered by start_date descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	const q = selectTrips + `
		WHERE (@year::int IS NULL OR EXTRACT(YEAR FROM t.start_date)::int = @year)
		  AND (@employee_id::bigint IS NULL OR EXISTS (
		        SELECT 1 FROM trip_participants f
		        WHERE f.trip_id = t.id AND f.employee_id = @employee_id))
		GROUP BY t.id
		ORDER BY t.start_date DESC, t.id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"year":        filter.Year,
		"employee_id": filter.EmployeeID,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Update overwrites the trip's fields and replaces its participants.
// The old links are deleted and the new set inserted; this is a full
// replace, not a diff.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET destination     = @destination,
		    organization_id = @organization_id,
		    start_date      = @start_date,
		    end_date        = @end_date,
		    transport       = @transport
		WHERE id = @id
		RETURNING id`

	const clear = `DELETE FROM trip_participants WHERE trip_id = @trip_id`

	var result domain.Trip
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		args := tripArgs(trip)
		args["id"] = trip.ID

		var id int64
		if err := tx.QueryRow(ctx, q, args).Scan(&id); err != nil {
			return classify(notFound(err), domain.ErrValidation)
		}
		if _, err := tx.Exec(ctx, clear, pgx.NamedArgs{"trip_id": id}); err != nil {
			return err
		}
		if err := insertParticipants(ctx, tx, id, trip.ParticipantIDs); err != nil {
			return err
		}
		var err error
		result, err = getTrip(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	var transport *string
	if trip.Transport != domain.TransportNone {
		s := string(trip.Transport)
		transport = &s
	}
	return pgx.NamedArgs{
		"destination":     trip.Destination,
		"organization_id": trip.OrganizationID, // nil becomes NULL
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
		"transport":       transport,
	}
}

// insertParticipants writes one trip_participants row per employee with a
// single statement. A repeated employee ID violates the (trip_id,
// employee_id) primary key and aborts the enclosing transaction.
func insertParticipants(ctx context.Context, tx pgx.Tx, tripID int64, employeeIDs []int64) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	const q = `
		INSERT INTO trip_participants (trip_id, employee_id)
		SELECT @trip_id, unnest(@employee_ids::bigint[])`

	_, err := tx.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "employee_ids": employeeIDs})
	if err != nil {
		return fmt.Errorf("insert participants: %w", classify(err, domain.ErrValidation))
	}
	return nil
}

func getTrip(ctx context.Context, db db, id int64) (domain.Trip, error) {
	const q = selectTrips + `
		WHERE t.id = @id
		GROUP BY t.id`

	return scanTrip(db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the nullable organization and transport columns.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		orgID     pgtype.Int8
		startDate pgtype.Date
		endDate   pgtype.Date
		transport pgtype.Text
	)

	err := s.Scan(&t.ID, &t.Destination, &orgID, &startDate, &endDate, &transport, &t.ParticipantIDs)
	if err != nil {
		return domain.Trip{}, notFound(err)
	}

	if orgID.Valid {
		id := orgID.Int64
		t.OrganizationID = &id
	}
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	if transport.Valid {
		t.Transport = domain.Transport(transport.String)
	}
	return t, nil
}
