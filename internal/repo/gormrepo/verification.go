package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type verificationRepo struct {
	db *gorm.DB
}

func (r *verificationRepo) Create(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	m := fromInstrument(in)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("gormrepo.VerificationRepo.Create: %w", classify(err))
	}
	return m.toDomain()
}

func (r *verificationRepo) GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error) {
	var m instrumentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("gormrepo.VerificationRepo.GetByID: %w", classify(err))
	}
	return m.toDomain()
}

func (r *verificationRepo) List(ctx context.Context) ([]domain.MeasuringInstrument, error) {
	var rows []instrumentModel
	if err := r.db.WithContext(ctx).Order("next_verification, name, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.VerificationRepo.List: %w", err)
	}
	out := make([]domain.MeasuringInstrument, 0, len(rows))
	for _, m := range rows {
		in, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("gormrepo.VerificationRepo.List: %w", err)
		}
		out = append(out, in)
	}
	return out, nil
}

// Update writes every column, so a cleared serial number is stored as NULL.
func (r *verificationRepo) Update(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	m := fromInstrument(in)
	res := r.db.WithContext(ctx).Model(&instrumentModel{}).Where("id = ?", in.ID).Updates(map[string]any{
		"name":              m.Name,
		"type":              m.Type,
		"serial_number":     m.SerialNumber,
		"inventory_number":  m.InventoryNumber,
		"last_verification": m.LastVerification,
		"next_verification": m.NextVerification,
		"notes":             m.Notes,
	})
	if res.Error != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("gormrepo.VerificationRepo.Update: %w", classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.MeasuringInstrument{}, fmt.Errorf("gormrepo.VerificationRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, in.ID)
}

func (r *verificationRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&instrumentModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("gormrepo.VerificationRepo.Delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gormrepo.VerificationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
