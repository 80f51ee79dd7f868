package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type tripRepo struct {
	db        *gorm.DB
	exclusive txFunc
}

func (r *tripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	var result domain.Trip
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		if err := checkTripRefs(tx, trip); err != nil {
			return err
		}
		m := fromTrip(trip)
		m.ID = 0
		if err := tx.Create(&m).Error; err != nil {
			return classify(err)
		}
		if err := insertParticipants(tx, m.ID, trip.ParticipantIDs); err != nil {
			return err
		}
		var err error
		result, err = getTrip(tx, m.ID)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("gormrepo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *tripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	t, err := getTrip(r.db.WithContext(ctx), id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("gormrepo.TripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *tripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	db := r.db.WithContext(ctx)
	q := withParticipants(db).Order("start_date DESC, id DESC")
	if filter.Year != nil {
		q = q.Where("substr(start_date, 1, 4) = ?", fmt.Sprintf("%04d", *filter.Year))
	}
	if filter.EmployeeID != nil {
		q = q.Where("id IN (?)", db.Model(&participantModel{}).
			Select("trip_id").
			Where("employee_id = ?", *filter.EmployeeID))
	}

	var rows []tripModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.TripRepo.List: %w", err)
	}
	trips := make([]domain.Trip, 0, len(rows))
	for _, m := range rows {
		t, err := m.toDomain()
		if err != nil {
			return nil, fmt.Errorf("gormrepo.TripRepo.List: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// Update overwrites the trip row and replaces the whole participant set.
func (r *tripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	var result domain.Trip
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		if err := checkTripRefs(tx, trip); err != nil {
			return err
		}
		m := fromTrip(trip)
		res := tx.Model(&tripModel{}).Where("id = ?", trip.ID).Updates(map[string]any{
			"destination":     m.Destination,
			"organization_id": m.OrganizationID,
			"start_date":      m.StartDate,
			"end_date":        m.EndDate,
			"transport":       m.Transport,
		})
		if res.Error != nil {
			return classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&participantModel{}).Error; err != nil {
			return err
		}
		if err := insertParticipants(tx, trip.ID, trip.ParticipantIDs); err != nil {
			return err
		}
		var err error
		result, err = getTrip(tx, trip.ID)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("gormrepo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes participant links before the trip row since the SQLite
// schema carries no cascading foreign keys.
func (r *tripRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.exclusive(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", id).Delete(&participantModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&tripModel{}, id)
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("gormrepo.TripRepo.Delete: %w", err)
	}
	return n, nil
}

func checkTripRefs(tx *gorm.DB, trip domain.Trip) error {
	if err := requireEmployees(tx, trip.ParticipantIDs); err != nil {
		return err
	}
	return requireOrganization(tx, trip.OrganizationID)
}

// insertParticipants writes one link per employee. A repeated ID violates
// the composite primary key and aborts the transaction.
func insertParticipants(tx *gorm.DB, tripID int64, employeeIDs []int64) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	links := make([]participantModel, len(employeeIDs))
	for i, id := range employeeIDs {
		links[i] = participantModel{TripID: tripID, EmployeeID: id}
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("insert participants: %w", classify(err))
	}
	return nil
}

func withParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Participants", func(db *gorm.DB) *gorm.DB {
		return db.Order("employee_id")
	})
}

func getTrip(db *gorm.DB, id int64) (domain.Trip, error) {
	var m tripModel
	if err := withParticipants(db).First(&m, id).Error; err != nil {
		return domain.Trip{}, classify(err)
	}
	return m.toDomain()
}
