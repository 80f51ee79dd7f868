package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type equipmentRepo struct {
	db *gorm.DB
}

func (r *equipmentRepo) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	var result domain.Equipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := fromEquipment(e)
		m.ID = 0
		if err := tx.Create(&m).Error; err != nil {
			return classify(err)
		}
		if err := insertServices(tx, m.ID, e.Services); err != nil {
			return err
		}
		var err error
		result, err = getEquipment(tx, m.ID)
		return err
	})
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("gormrepo.EquipmentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *equipmentRepo) GetByID(ctx context.Context, id int64) (domain.Equipment, error) {
	e, err := getEquipment(r.db.WithContext(ctx), id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("gormrepo.EquipmentRepo.GetByID: %w", err)
	}
	return e, nil
}

func (r *equipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	var rows []equipmentModel
	if err := withServices(r.db.WithContext(ctx)).Order("name, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.EquipmentRepo.List: %w", err)
	}
	items := make([]domain.Equipment, 0, len(rows))
	for _, m := range rows {
		e, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("gormrepo.EquipmentRepo.List: %w", err)
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *equipmentRepo) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	var result domain.Equipment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := fromEquipment(e)
		res := tx.Model(&equipmentModel{}).Where("id = ?", e.ID).Updates(map[string]any{
			"name":          m.Name,
			"serial_number": m.SerialNumber,
			"location":      m.Location,
			"start_date":    m.StartDate,
		})
		if res.Error != nil {
			return classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("equipment_id = ?", e.ID).Delete(&serviceModel{}).Error; err != nil {
			return err
		}
		if err := insertServices(tx, e.ID, e.Services); err != nil {
			return err
		}
		var err error
		result, err = getEquipment(tx, e.ID)
		return err
	})
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("gormrepo.EquipmentRepo.Update: %w", err)
	}
	return result, nil
}

func (r *equipmentRepo) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", id).Delete(&serviceModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&equipmentModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("gormrepo.EquipmentRepo.Delete: %w", err)
	}
	return nil
}

func insertServices(tx *gorm.DB, equipmentID int64, services []domain.ServiceDefinition) error {
	if len(services) == 0 {
		return nil
	}
	rows := make([]serviceModel, len(services))
	for i, s := range services {
		rows[i] = serviceModel{EquipmentID: equipmentID, Name: s.Name, Frequency: string(s.Frequency)}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert services: %w", classify(err))
	}
	return nil
}

func withServices(db *gorm.DB) *gorm.DB {
	return db.Preload("Services", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func getEquipment(db *gorm.DB, id int64) (domain.Equipment, error) {
	var m equipmentModel
	if err := withServices(db).First(&m, id).Error; err != nil {
		return domain.Equipment{}, classify(err)
	}
	return m.toDomain()
}
