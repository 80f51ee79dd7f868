package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type signatureRepo struct {
	db *gorm.DB
}

func (r *signatureRepo) Create(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	m := fromSignature(s)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("gormrepo.SignatureRepo.Create: %w", classify(err))
	}
	return m.toDomain()
}

func (r *signatureRepo) GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error) {
	var m signatureModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("gormrepo.SignatureRepo.GetByID: %w", classify(err))
	}
	return m.toDomain()
}

func (r *signatureRepo) List(ctx context.Context) ([]domain.DigitalSignature, error) {
	var rows []signatureModel
	if err := r.db.WithContext(ctx).Order("valid_to, full_name, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.SignatureRepo.List: %w", err)
	}
	out := make([]domain.DigitalSignature, 0, len(rows))
	for _, m := range rows {
		s, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("gormrepo.SignatureRepo.List: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *signatureRepo) Update(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	m := fromSignature(s)
	res := r.db.WithContext(ctx).Model(&signatureModel{}).Where("id = ?", s.ID).Updates(map[string]any{
		"full_name":  m.FullName,
		"position":   m.Position,
		"inn":        m.INN,
		"ecp_number": m.ECPNumber,
		"valid_from": m.ValidFrom,
		"valid_to":   m.ValidTo,
	})
	if res.Error != nil {
		return domain.DigitalSignature{}, fmt.Errorf("gormrepo.SignatureRepo.Update: %w", classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.DigitalSignature{}, fmt.Errorf("gormrepo.SignatureRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, s.ID)
}

func (r *signatureRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&signatureModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("gormrepo.SignatureRepo.Delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("gormrepo.SignatureRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
