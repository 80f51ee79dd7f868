package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// VacationService implements business logic for Vacation operations.
// Vacations share the conflict space with trips.
type VacationService struct {
	store repo.Store
	log   *slog.Logger
}

// NewVacationService constructs a VacationService backed by the provided Store.
func NewVacationService(store repo.Store, log *slog.Logger) *VacationService {
	return &VacationService{store: store, log: log}
}

// Create validates and persists a vacation. Returns a *domain.ConflictError
// when the employee already has an overlapping trip or vacation.
func (s *VacationService) Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	v = v.Normalize()
	if err := v.Validate(); err != nil {
		return domain.Vacation{}, err
	}

	var result domain.Vacation
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		if err := reserve(ctx, tx, []int64{v.EmployeeID}, v.Range(), domain.ConflictOptions{}); err != nil {
			return err
		}
		var err error
		result, err = tx.Vacations().Create(ctx, v)
		return err
	})
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("service.VacationService.Create: %w", err)
	}

	s.log.Info("vacation created", "vacation_id", result.ID, "employee_id", result.EmployeeID)
	return result, nil
}

// GetByID returns domain.ErrNotFound if no vacation with that ID exists.
func (s *VacationService) GetByID(ctx context.Context, id int64) (domain.Vacation, error) {
	result, err := s.store.Vacations().GetByID(ctx, id)
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("service.VacationService.GetByID: %w", err)
	}
	return result, nil
}

// List returns vacations, optionally restricted to one employee.
func (s *VacationService) List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error) {
	vacations, err := s.store.Vacations().List(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("service.VacationService.List: %w", err)
	}
	if vacations == nil {
		return []domain.Vacation{}, nil
	}
	return vacations, nil
}

// Update validates and overwrites a vacation, ignoring its own previous
// version during the conflict check.
func (s *VacationService) Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	v = v.Normalize()
	if err := v.Validate(); err != nil {
		return domain.Vacation{}, err
	}

	var result domain.Vacation
	err := s.store.WithTx(ctx, func(tx repo.Store) error {
		opts := domain.ConflictOptions{ExcludeVacationID: &v.ID}
		if err := reserve(ctx, tx, []int64{v.EmployeeID}, v.Range(), opts); err != nil {
			return err
		}
		var err error
		result, err = tx.Vacations().Update(ctx, v)
		return err
	})
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("service.VacationService.Update: %w", err)
	}

	s.log.Info("vacation updated", "vacation_id", result.ID)
	return result, nil
}

// Delete returns domain.ErrNotFound if nothing was deleted.
func (s *VacationService) Delete(ctx context.Context, id int64) error {
	n, err := s.store.Vacations().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service.VacationService.Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("service.VacationService.Delete: %w", domain.ErrNotFound)
	}
	s.log.Info("vacation deleted", "vacation_id", id)
	return nil
}
