package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// EmployeeService implements business logic for employees and their profiles.
type EmployeeService struct {
	store repo.Store
	log   *slog.Logger
}

// NewEmployeeService constructs an EmployeeService backed by the provided Store.
func NewEmployeeService(store repo.Store, log *slog.Logger) *EmployeeService {
	return &EmployeeService{store: store, log: log}
}

// Create returns domain.ErrConflict when the full name is already taken.
func (s *EmployeeService) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return domain.Employee{}, err
	}
	result, err := s.store.Employees().Create(ctx, e)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Create: %w", err)
	}
	s.log.Info("employee created", "employee_id", result.ID)
	return result, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	result, err := s.store.Employees().GetByID(ctx, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.GetByID: %w", err)
	}
	return result, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.store.Employees().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.EmployeeService.List: %w", err)
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}

func (s *EmployeeService) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return domain.Employee{}, err
	}
	result, err := s.store.Employees().Update(ctx, e)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("service.EmployeeService.Update: %w", err)
	}
	return result, nil
}

// Delete returns domain.ErrInUse while trips or vacations reference the employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Employees().Delete(ctx, id); err != nil {
		return fmt.Errorf("service.EmployeeService.Delete: %w", err)
	}
	s.log.Info("employee deleted", "employee_id", id)
	return nil
}

// Profile returns the employee with every trip and vacation they are part of.
func (s *EmployeeService) Profile(ctx context.Context, id int64) (domain.EmployeeProfile, error) {
	e, err := s.store.Employees().GetByID(ctx, id)
	if err != nil {
		return domain.EmployeeProfile{}, fmt.Errorf("service.EmployeeService.Profile: %w", err)
	}
	trips, err := s.store.Trips().List(ctx, domain.TripFilter{EmployeeID: &id})
	if err != nil {
		return domain.EmployeeProfile{}, fmt.Errorf("service.EmployeeService.Profile: %w", err)
	}
	vacations, err := s.store.Vacations().List(ctx, &id)
	if err != nil {
		return domain.EmployeeProfile{}, fmt.Errorf("service.EmployeeService.Profile: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	if vacations == nil {
		vacations = []domain.Vacation{}
	}
	return domain.EmployeeProfile{Employee: e, Trips: trips, Vacations: vacations}, nil
}

// Trips returns the trips the employee takes part in.
// Returns domain.ErrNotFound for an unknown employee rather than an empty list.
func (s *EmployeeService) Trips(ctx context.Context, id int64) ([]domain.Trip, error) {
	if _, err := s.store.Employees().GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("service.EmployeeService.Trips: %w", err)
	}
	trips, err := s.store.Trips().List(ctx, domain.TripFilter{EmployeeID: &id})
	if err != nil {
		return nil, fmt.Errorf("service.EmployeeService.Trips: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}
