package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hr-ops/internal/domain"
)

// EmployeeRepo defines the persistence operations for Employees.
type EmployeeRepo interface {
	// Create inserts a new employee. Returns domain.ErrConflict when an
	// employee with the same full name already exists.
	Create(ctx context.Context, e domain.Employee) (domain.Employee, error)

	// GetByID returns domain.ErrNotFound if no employee with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Employee, error)

	// List returns all employees ordered by last, first and patronymic name.
	List(ctx context.Context) ([]domain.Employee, error)

	// Update overwrites an employee. Returns domain.ErrNotFound or domain.ErrConflict.
	Update(ctx context.Context, e domain.Employee) (domain.Employee, error)

	// Delete removes an employee. Returns domain.ErrInUse while trips or
	// vacations still reference them.
	Delete(ctx context.Context, id int64) error
}

type pgEmployeeRepo struct {
	db db
}

// NewEmployeeRepo constructs an EmployeeRepo backed by the provided db connection.
func NewEmployeeRepo(db db) EmployeeRepo {
	return &pgEmployeeRepo{db: db}
}

const employeeColumns = `id, last_name, first_name, patronymic, position`

func (r *pgEmployeeRepo) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	const q = `
		INSERT INTO employees (last_name, first_name, patronymic, position)
		VALUES (@last_name, @first_name, @patronymic, @position)
		RETURNING ` + employeeColumns

	result, err := scanEmployee(r.db.QueryRow(ctx, q, employeeArgs(e)))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Create: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgEmployeeRepo) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employees WHERE id = @id`

	result, err := scanEmployee(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employees ORDER BY last_name, first_name, patronymic, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.List: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EmployeeRepo.List: scan: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EmployeeRepo.List: rows: %w", err)
	}
	return employees, nil
}

func (r *pgEmployeeRepo) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	const q = `
		UPDATE employees
		SET last_name  = @last_name,
		    first_name = @first_name,
		    patronymic = @patronymic,
		    position   = @position
		WHERE id = @id
		RETURNING ` + employeeColumns

	args := employeeArgs(e)
	args["id"] = e.ID

	result, err := scanEmployee(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Employee{}, fmt.Errorf("repo.EmployeeRepo.Update: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgEmployeeRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM employees WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", classify(err, domain.ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EmployeeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func employeeArgs(e domain.Employee) pgx.NamedArgs {
	return pgx.NamedArgs{
		"last_name":  e.LastName,
		"first_name": e.FirstName,
		"patronymic": e.Patronymic,
		"position":   e.Position,
	}
}

func scanEmployee(s scanner) (domain.Employee, error) {
	var e domain.Employee
	if err := s.Scan(&e.ID, &e.LastName, &e.FirstName, &e.Patronymic, &e.Position); err != nil {
		return domain.Employee{}, notFound(err)
	}
	return e, nil
}
