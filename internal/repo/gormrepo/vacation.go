package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type vacationRepo struct {
	db        *gorm.DB
	exclusive txFunc
}

func (r *vacationRepo) Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	m := fromVacation(v)
	m.ID = 0
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		if err := requireEmployees(tx, []int64{v.EmployeeID}); err != nil {
			return err
		}
		return classify(tx.Create(&m).Error)
	})
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("gormrepo.VacationRepo.Create: %w", err)
	}
	return m.toDomain()
}

func (r *vacationRepo) GetByID(ctx context.Context, id int64) (domain.Vacation, error) {
	var m vacationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return domain.Vacation{}, fmt.Errorf("gormrepo.VacationRepo.GetByID: %w", classify(err))
	}
	return m.toDomain()
}

func (r *vacationRepo) List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error) {
	q := r.db.WithContext(ctx).Order("start_date DESC, id DESC")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	var rows []vacationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.VacationRepo.List: %w", err)
	}
	out := make([]domain.Vacation, 0, len(rows))
	for _, m := range rows {
		v, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("gormrepo.VacationRepo.List: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *vacationRepo) Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	m := fromVacation(v)
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		if err := requireEmployees(tx, []int64{v.EmployeeID}); err != nil {
			return err
		}
		res := tx.Model(&vacationModel{}).Where("id = ?", v.ID).Updates(map[string]any{
			"employee_id": m.EmployeeID,
			"start_date":  m.StartDate,
			"end_date":    m.EndDate,
		})
		if res.Error != nil {
			return classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("gormrepo.VacationRepo.Update: %w", err)
	}
	return r.GetByID(ctx, v.ID)
}

func (r *vacationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&vacationModel{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("gormrepo.VacationRepo.Delete: %w", res.Error)
	}
	return res.RowsAffected, nil
}
