package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// SignatureService manages the register of digital signatures and reports
// how many are about to run out.
type SignatureService struct {
	store repo.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewSignatureService constructs a SignatureService. now supplies today's
// date for expiry statistics; nil means time.Now.
func NewSignatureService(store repo.Store, log *slog.Logger, now func() time.Time) *SignatureService {
	if now == nil {
		now = time.Now
	}
	return &SignatureService{store: store, log: log, now: now}
}

// Create returns domain.ErrConflict when the ECP number is already registered.
func (s *SignatureService) Create(ctx context.Context, sig domain.DigitalSignature) (domain.DigitalSignature, error) {
	sig = sig.Normalize()
	if err := sig.Validate(); err != nil {
		return domain.DigitalSignature{}, err
	}
	result, err := s.store.Signatures().Create(ctx, sig)
	if err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("service.SignatureService.Create: %w", err)
	}
	s.log.Info("signature registered", "signature_id", result.ID, "valid_to", result.ValidTo.Format(domain.DateLayout))
	return result, nil
}

func (s *SignatureService) GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error) {
	result, err := s.store.Signatures().GetByID(ctx, id)
	if err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("service.SignatureService.GetByID: %w", err)
	}
	return result, nil
}

func (s *SignatureService) List(ctx context.Context) ([]domain.DigitalSignature, error) {
	items, err := s.store.Signatures().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SignatureService.List: %w", err)
	}
	if items == nil {
		return []domain.DigitalSignature{}, nil
	}
	return items, nil
}

func (s *SignatureService) Update(ctx context.Context, sig domain.DigitalSignature) (domain.DigitalSignature, error) {
	sig = sig.Normalize()
	if err := sig.Validate(); err != nil {
		return domain.DigitalSignature{}, err
	}
	result, err := s.store.Signatures().Update(ctx, sig)
	if err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("service.SignatureService.Update: %w", err)
	}
	return result, nil
}

func (s *SignatureService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Signatures().Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SignatureService.Delete: %w", err)
	}
	return nil
}

// Stats counts signatures by how close their end date is to today.
func (s *SignatureService) Stats(ctx context.Context) (domain.ExpiryStats, error) {
	items, err := s.store.Signatures().List(ctx)
	if err != nil {
		return domain.ExpiryStats{}, fmt.Errorf("service.SignatureService.Stats: %w", err)
	}
	today := s.now()
	var stats domain.ExpiryStats
	for _, sig := range items {
		stats.Add(sig.Expiry(today))
	}
	return stats, nil
}
