package gormrepo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pkordes/hr-ops/internal/domain"
)

type conflictFinder struct {
	db *gorm.DB
}

func (f *conflictFinder) FindConflictingEmployee(ctx context.Context, employeeIDs []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	db := f.db.WithContext(ctx)
	start, end := formatDay(r.Start), formatDay(r.End)

	trips := db.Table("trips AS t").
		Select("e.id, e.last_name, e.first_name").
		Joins("JOIN trip_participants tp ON tp.trip_id = t.id").
		Joins("JOIN employees e ON e.id = tp.employee_id").
		Where("tp.employee_id IN ?", employeeIDs).
		Where("t.start_date <= ? AND t.end_date >= ?", end, start).
		Order("t.start_date, t.id, e.id")
	if opts.ExcludeTripID != nil {
		trips = trips.Where("t.id <> ?", *opts.ExcludeTripID)
	}
	found, err := first(trips)
	if err != nil || found != nil {
		return found, err
	}

	vacations := db.Table("vacations AS v").
		Select("e.id, e.last_name, e.first_name").
		Joins("JOIN employees e ON e.id = v.employee_id").
		Where("v.employee_id IN ?", employeeIDs).
		Where("v.start_date <= ? AND v.end_date >= ?", end, start).
		Order("v.start_date, v.id")
	if opts.ExcludeVacationID != nil {
		vacations = vacations.Where("v.id <> ?", *opts.ExcludeVacationID)
	}
	return first(vacations)
}

func first(q *gorm.DB) (*domain.ConflictingEmployee, error) {
	var rows []domain.ConflictingEmployee
	if err := q.Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormrepo.ConflictFinder.FindConflictingEmployee: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
