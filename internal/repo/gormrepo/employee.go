package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type employeeRepo struct {
	db        *gorm.DB
	exclusive txFunc
}

func (r *employeeRepo) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	m := fromEmployee(e)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Employee{}, fmt.Errorf("gormrepo.EmployeeRepo.Create: %w", classify(err))
	}
	return m.toDomain(), nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	var m employeeModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Employee{}, fmt.Errorf("gormrepo.EmployeeRepo.GetByID: %w", classify(err))
	}
	return m.toDomain(), nil
}

func (r *employeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	var rows []employeeModel
	err := r.db.WithContext(ctx).
		Order("last_name, first_name, patronymic, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormrepo.EmployeeRepo.List: %w", err)
	}
	out := make([]domain.Employee, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *employeeRepo) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	res := r.db.WithContext(ctx).Model(&employeeModel{}).Where("id = ?", e.ID).Updates(map[string]any{
		"last_name":  e.LastName,
		"first_name": e.FirstName,
		"patronymic": e.Patronymic,
		"position":   e.Position,
	})
	if res.Error != nil {
		return domain.Employee{}, fmt.Errorf("gormrepo.EmployeeRepo.Update: %w", classify(res.Error))
	}
	if res.RowsAffected == 0 {
		return domain.Employee{}, fmt.Errorf("gormrepo.EmployeeRepo.Update: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, e.ID)
}

// Delete refuses to remove an employee still referenced by a trip or a
// vacation. The reference count and the delete share one exclusive
// transaction, so no booking can slip in between them.
func (r *employeeRepo) Delete(ctx context.Context, id int64) error {
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		var trips, vacations int64
		if err := tx.Model(&participantModel{}).Where("employee_id = ?", id).Count(&trips).Error; err != nil {
			return err
		}
		if err := tx.Model(&vacationModel{}).Where("employee_id = ?", id).Count(&vacations).Error; err != nil {
			return err
		}
		if trips+vacations > 0 {
			return domain.ErrInUse
		}

		res := tx.Delete(&employeeModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("gormrepo.EmployeeRepo.Delete: %w", err)
	}
	return nil
}
