// Package service contains the business logic for the HR operations API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// TripService implements business logic for Trip operations.
// Create and Update run the conflict check and the write in one store
// transaction, holding the participants' booking locks throughout, so two
// concurrent requests can never both book the same employee.
type TripService struct {
	store repo.Store
	log   *slog.Logger
}

// NewTripService constructs a TripService backed by the provided Store.
func NewTripService(store repo.Store, log *slog.Logger) *TripService {
	return &TripService{store: store, log: log}
}

// Create validates the trip, rejects it with a *domain.ConflictError when a
// participant is busy in the period, and persists it with its participants.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = trip.Normalize()
	if err := trip.Validate(); err != nil {
		return domain.Trip{}, err
	}

	var result domain.Trip
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if err := reserve(ctx, tx, trip.ParticipantIDs, trip.Range(), domain.ConflictOptions{}); err != nil {
			return err
		}
		var err error
		result, err = tx.Trips().Create(ctx, trip)
		return err
	})
	if err != nil {
		s.logRejected("create", 0, err)
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.log.Info("trip created", "trip_id", result.ID, "participants", len(result.ParticipantIDs))
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	result, err := s.store.Trips().GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching filter, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	trips, err := s.store.Trips().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and replaces an existing trip, including its whole
// participant set. The trip's own previous version never counts as a conflict.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = trip.Normalize()
	if err := trip.Validate(); err != nil {
		return domain.Trip{}, err
	}

	var result domain.Trip
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		opts := domain.ConflictOptions{ExcludeTripID: &trip.ID}
		if err := reserve(ctx, tx, trip.ParticipantIDs, trip.Range(), opts); err != nil {
			return err
		}
		var err error
		result, err = tx.Trips().Update(ctx, trip)
		return err
	})
	if err != nil {
		s.logRejected("update", trip.ID, err)
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	s.log.Info("trip updated", "trip_id", result.ID, "participants", len(result.ParticipantIDs))
	return result, nil
}

// Delete removes a trip and its participant links.
// Returns domain.ErrNotFound if nothing was deleted.
func (s *TripService) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Trips().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrNotFound)
	}
	s.log.Info("trip deleted", "trip_id", id)
	return nil
}

// FindConflictingEmployee runs the read-only conflict check. It backs UI
// pre-checks; writes repeat the check under lock.
func (s *TripService) FindConflictingEmployee(ctx context.Context, employeeIDs []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
	ids, err := participantSet(employeeIDs)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	found, err := s.store.Conflicts().FindConflictingEmployee(ctx, ids, r, opts)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.FindConflictingEmployee: %w", err)
	}
	return found, nil
}

func (s *TripService) logRejected(op string, id int64, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		s.log.Info("trip rejected", "op", op, "trip_id", id, "employee_id", conflict.Employee.ID)
	}
}
