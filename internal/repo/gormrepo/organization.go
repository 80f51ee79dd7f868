package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type organizationRepo struct {
	db        *gorm.DB
	exclusive txFunc
}

func (r *organizationRepo) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	m := organizationModel{Name: o.Name, City: o.City}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Organization{}, fmt.Errorf("gormrepo.OrganizationRepo.Create: %w", classify(err))
	}
	return m.toDomain(), nil
}

func (r *organizationRepo) GetByID(ctx context.Context, id int64) (domain.Organization, error) {
	var m organizationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Organization{}, fmt.Errorf("gormrepo.OrganizationRepo.GetByID: %w", classify(err))
	}
	return m.toDomain(), nil
}

func (r *organizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	var rows []organizationModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.OrganizationRepo.List: %w", err)
	}
	out := make([]domain.Organization, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *organizationRepo) Update(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	res := r.db.WithContext(ctx).Model(&organizationModel{}).Where("id = ?", o.ID).Updates(map[string]any{
		"name": o.Name,
		"city": o.City,
	})
	if res.Error != nil {
		return domain.Organization{}, fmt.Errorf("gormrepo.OrganizationRepo.Update: %w", classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Organization{}, fmt.Errorf("gormrepo.OrganizationRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, o.ID)
}

// Delete refuses to remove an organization a trip still points at.
func (r *organizationRepo) Delete(ctx context.Context, id int64) error {
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		var trips int64
		if err := tx.Model(&tripModel{}).Where("organization_id = ?", id).Count(&trips).Error; err != nil {
			return err
		}
		if trips > 0 {
			return domain.ErrInUse
		}

		res := tx.Delete(&organizationModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("gormrepo.OrganizationRepo.Delete: %w", err)
	}
	return nil
}
