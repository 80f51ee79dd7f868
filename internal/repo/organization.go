package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/hr-ops/internal/domain"
)

// OrganizationRepo defines the persistence operations for Organizations.
type OrganizationRepo interface {
	Create(ctx context.Context, o domain.Organization) (domain.Organization, error)
	GetByID(ctx context.Context, id int64) (domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, o domain.Organization) (domain.Organization, error)
	// Delete returns domain.ErrInUse while trips reference the organization.
	Delete(ctx context.Context, id int64) error
}

type pgOrganizationRepo struct {
	db db
}

// NewOrganizationRepo constructs an OrganizationRepo backed by the provided db connection.
func NewOrganizationRepo(db db) OrganizationRepo {
	return &pgOrganizationRepo{db: db}
}

func (r *pgOrganizationRepo) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	const q = `
		INSERT INTO organizations (name, city)
		VALUES (@name, @city)
		RETURNING id, name, city`

	result, err := scanOrganization(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": o.Name, "city": o.City}))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("repo.OrganizationRepo.Create: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgOrganizationRepo) GetByID(ctx context.Context, id int64) (domain.Organization, error) {
	const q = `SELECT id, name, city FROM organizations WHERE id = @id`

	result, err := scanOrganization(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("repo.OrganizationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	const q = `SELECT id, name, city FROM organizations ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.OrganizationRepo.List: %w", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.OrganizationRepo.List: scan: %w", err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OrganizationRepo.List: rows: %w", err)
	}
	return orgs, nil
}

func (r *pgOrganizationRepo) Update(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	const q = `
		UPDATE organizations SET name = @name, city = @city
		WHERE id = @id
		RETURNING id, name, city`

	result, err := scanOrganization(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": o.ID, "name": o.Name, "city": o.City}))
	if err != nil {
		return domain.Organization{}, fmt.Errorf("repo.OrganizationRepo.Update: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgOrganizationRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM organizations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.OrganizationRepo.Delete: %w", classify(err, domain.ErrInUse))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OrganizationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanOrganization(s scanner) (domain.Organization, error) {
	var o domain.Organization
	if err := s.Scan(&o.ID, &o.Name, &o.City); err != nil {
		return domain.Organization{}, notFound(err)
	}
	return o, nil
}
