package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// VerificationService keeps the verification schedule of measuring
// instruments.
type VerificationService struct {
	store repo.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewVerificationService constructs a VerificationService. now supplies
// today's date for the dashboard statistics; nil means time.Now.
func NewVerificationService(store repo.Store, log *slog.Logger, now func() time.Time) *VerificationService {
	if now == nil {
		now = time.Now
	}
	return &VerificationService{store: store, log: log, now: now}
}

func (s *VerificationService) Create(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return domain.MeasuringInstrument{}, err
	}
	result, err := s.store.Verification().Create(ctx, m)
	if err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("service.VerificationService.Create: %w", err)
	}
	s.log.Info("instrument added to verification schedule", "instrument_id", result.ID,
		"next_verification", result.NextVerification.Format(domain.DateLayout))
	return result, nil
}

func (s *VerificationService) GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error) {
	result, err := s.store.Verification().GetByID(ctx, id)
	if err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("service.VerificationService.GetByID: %w", err)
	}
	return result, nil
}

func (s *VerificationService) List(ctx context.Context) ([]domain.MeasuringInstrument, error) {
	items, err := s.store.Verification().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VerificationService.List: %w", err)
	}
	if items == nil {
		return []domain.MeasuringInstrument{}, nil
	}
	return items, nil
}

func (s *VerificationService) Update(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return domain.MeasuringInstrument{}, err
	}
	result, err := s.store.Verification().Update(ctx, m)
	if err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("service.VerificationService.Update: %w", err)
	}
	return result, nil
}

func (s *VerificationService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Verification().Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VerificationService.Delete: %w", err)
	}
	return nil
}

// Stats counts instruments whose verification is current, due within the
// expiring window, or overdue.
func (s *VerificationService) Stats(ctx context.Context) (domain.ExpiryStats, error) {
	items, err := s.store.Verification().List(ctx)
	if err != nil {
		return domain.ExpiryStats{}, fmt.Errorf("service.VerificationService.Stats: %w", err)
	}
	today := s.now()
	var stats domain.ExpiryStats
	for _, m := range items {
		stats.Add(m.Expiry(today))
	}
	return stats, nil
}
