package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/maintenance"
	"github.com/pkordes/hr-ops/internal/repo"
)

// MaxProjectionYears bounds the horizon a caller may request.
const MaxProjectionYears = 100

// MaintenanceService manages equipment and projects its maintenance schedule.
type MaintenanceService struct {
	store        repo.Store
	projector    *maintenance.Projector
	defaultYears int
	log          *slog.Logger
}

// NewMaintenanceService constructs a MaintenanceService. defaultYears is
// used when a schedule request names no horizon; values <= 0 fall back to
// maintenance.DefaultYears.
func NewMaintenanceService(store repo.Store, projector *maintenance.Projector, defaultYears int, log *slog.Logger) *MaintenanceService {
	if defaultYears <= 0 {
		defaultYears = maintenance.DefaultYears
	}
	return &MaintenanceService{store: store, projector: projector, defaultYears: defaultYears, log: log}
}

func (s *MaintenanceService) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return domain.Equipment{}, err
	}
	result, err := s.store.Equipment().Create(ctx, e)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.MaintenanceService.Create: %w", err)
	}
	s.log.Info("equipment created", "equipment_id", result.ID, "services", len(result.Services))
	return result, nil
}

func (s *MaintenanceService) GetByID(ctx context.Context, id int64) (domain.Equipment, error) {
	result, err := s.store.Equipment().GetByID(ctx, id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.MaintenanceService.GetByID: %w", err)
	}
	return result, nil
}

func (s *MaintenanceService) List(ctx context.Context) ([]domain.Equipment, error) {
	items, err := s.store.Equipment().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.MaintenanceService.List: %w", err)
	}
	if items == nil {
		return []domain.Equipment{}, nil
	}
	return items, nil
}

// Update overwrites the equipment and replaces its service definitions.
func (s *MaintenanceService) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	e = e.Normalize()
	if err := e.Validate(); err != nil {
		return domain.Equipment{}, err
	}
	result, err := s.store.Equipment().Update(ctx, e)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("service.MaintenanceService.Update: %w", err)
	}
	s.log.Info("equipment updated", "equipment_id", result.ID)
	return result, nil
}

func (s *MaintenanceService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Equipment().Delete(ctx, id); err != nil {
		return fmt.Errorf("service.MaintenanceService.Delete: %w", err)
	}
	s.log.Info("equipment deleted", "equipment_id", id)
	return nil
}

// Schedule projects the stored equipment's maintenance dates from its
// commissioning date. years <= 0 selects the configured default horizon.
func (s *MaintenanceService) Schedule(ctx context.Context, id int64, years int) ([]domain.ProjectedDate, error) {
	years, err := s.horizon(years)
	if err != nil {
		return nil, err
	}
	e, err := s.store.Equipment().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.MaintenanceService.Schedule: %w", err)
	}
	return s.projector.Project(e.StartDate, e.Services, years), nil
}

// Project computes an ad-hoc schedule without touching the store. Unlike the
// projector itself, which silently yields nothing for an unusable service
// list, it reports empty services and unknown frequencies as validation errors.
func (s *MaintenanceService) Project(start time.Time, services []domain.ServiceDefinition, years int) ([]domain.ProjectedDate, error) {
	years, err := s.horizon(years)
	if err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if len(services) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", domain.ErrValidation)
	}
	for _, svc := range services {
		if !svc.Frequency.Valid() {
			return nil, fmt.Errorf("%w: unknown frequency %q", domain.ErrValidation, svc.Frequency)
		}
	}
	return s.projector.Project(start, services, years), nil
}

func (s *MaintenanceService) horizon(years int) (int, error) {
	switch {
	case years < 0 || years > MaxProjectionYears:
		return 0, fmt.Errorf("%w: years must be between 1 and %d", domain.ErrValidation, MaxProjectionYears)
	case years == 0:
		return s.defaultYears, nil
	}
	return years, nil
}
