package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hr-ops/internal/domain"
)

// VacationRepo defines the persistence operations for Vacations.
type VacationRepo interface {
	Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error)

	// GetByID returns domain.ErrNotFound if no vacation with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Vacation, error)

	// List returns vacations ordered by start_date descending, optionally
	// restricted to one employee.
	List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error)

	// Update returns domain.ErrNotFound if no vacation with that ID exists.
	Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error)

	// Delete returns the number of deleted rows.
	Delete(ctx context.Context, id int64) (int64, error)
}

type pgVacationRepo struct {
	db db
}

// NewVacationRepo constructs a VacationRepo backed by the provided db connection.
func NewVacationRepo(db db) VacationRepo {
	return &pgVacationRepo{db: db}
}

const vacationColumns = `id, employee_id, start_date, end_date`

func (r *pgVacationRepo) Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	const q = `
		INSERT INTO vacations (employee_id, start_date, end_date)
		VALUES (@employee_id, @start_date, @end_date)
		RETURNING ` + vacationColumns

	result, err := scanVacation(r.db.QueryRow(ctx, q, vacationArgs(v)))
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.Create: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgVacationRepo) GetByID(ctx context.Context, id int64) (domain.Vacation, error) {
	const q = `SELECT ` + vacationColumns + ` FROM vacations WHERE id = @id`

	result, err := scanVacation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVacationRepo) List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error) {
	const q = `
		SELECT ` + vacationColumns + `
		FROM vacations
		WHERE (@employee_id::bigint IS NULL OR employee_id = @employee_id)
		ORDER BY start_date DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"employee_id": employeeID})
	if err != nil {
		return nil, fmt.Errorf("repo.VacationRepo.List: %w", err)
	}
	defer rows.Close()

	vacations := []domain.Vacation{}
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VacationRepo.List: scan: %w", err)
		}
		vacations = append(vacations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VacationRepo.List: rows: %w", err)
	}
	return vacations, nil
}

func (r *pgVacationRepo) Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	const q = `
		UPDATE vacations
		SET employee_id = @employee_id,
		    start_date  = @start_date,
		    end_date    = @end_date
		WHERE id = @id
		RETURNING ` + vacationColumns

	args := vacationArgs(v)
	args["id"] = v.ID

	result, err := scanVacation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.Update: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgVacationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	const q = `DELETE FROM vacations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return 0, fmt.Errorf("repo.VacationRepo.Delete: %w", err)
	}
	return tag.RowsAffected(), nil
}

func vacationArgs(v domain.Vacation) pgx.NamedArgs {
	return pgx.NamedArgs{
		"employee_id": v.EmployeeID,
		"start_date":  v.StartDate,
		"end_date":    v.EndDate,
	}
}

func scanVacation(s scanner) (domain.Vacation, error) {
	var (
		v         domain.Vacation
		startDate pgtype.Date
		endDate   pgtype.Date
	)
	if err := s.Scan(&v.ID, &v.EmployeeID, &startDate, &endDate); err != nil {
		return domain.Vacation{}, notFound(err)
	}
	v.StartDate = startDate.Time
	v.EndDate = endDate.Time
	return v, nil
}
