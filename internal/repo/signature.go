package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hr-ops/internal/domain"
)

// SignatureRepo defines the persistence operations for digital signatures.
type SignatureRepo interface {
	// Create and Update return domain.ErrConflict when the ECP number is
	// already registered.
	Create(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error)
	// List orders signatures by end date, soonest first.
	List(ctx context.Context) ([]domain.DigitalSignature, error)
	Update(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	Delete(ctx context.Context, id int64) error
}

type pgSignatureRepo struct {
	db db
}

// NewSignatureRepo constructs a SignatureRepo backed by the provided db connection.
func NewSignatureRepo(db db) SignatureRepo {
	return &pgSignatureRepo{db: db}
}

const signatureColumns = `id, full_name, position, inn, ecp_number, valid_from, valid_to`

func (r *pgSignatureRepo) Create(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	const q = `
		INSERT INTO digital_signatures (full_name, position, inn, ecp_number, valid_from, valid_to)
		VALUES (@full_name, @position, @inn, @ecp_number, @valid_from, @valid_to)
		RETURNING ` + signatureColumns

	result, err := scanSignature(r.db.QueryRow(ctx, q, signatureArgs(s)))
	if err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("repo.SignatureRepo.Create: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgSignatureRepo) GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error) {
	const q = `SELECT ` + signatureColumns + ` FROM digital_signatures WHERE id = @id`

	result, err := scanSignature(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("repo.SignatureRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgSignatureRepo) List(ctx context.Context) ([]domain.DigitalSignature, error) {
	const q = `SELECT ` + signatureColumns + ` FROM digital_signatures ORDER BY valid_to, full_name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SignatureRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.DigitalSignature{}
	for rows.Next() {
		s, err := scanSignature(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SignatureRepo.List: scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SignatureRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgSignatureRepo) Update(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	const q = `
		UPDATE digital_signatures
		SET full_name  = @full_name,
		    position   = @position,
		    inn        = @inn,
		    ecp_number = @ecp_number,
		    valid_from = @valid_from,
		    valid_to   = @valid_to
		WHERE id = @id
		RETURNING ` + signatureColumns

	args := signatureArgs(s)
	args["id"] = s.ID
	result, err := scanSignature(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DigitalSignature{}, fmt.Errorf("repo.SignatureRepo.Update: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgSignatureRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM digital_signatures WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SignatureRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SignatureRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func signatureArgs(s domain.DigitalSignature) pgx.NamedArgs {
	return pgx.NamedArgs{
		"full_name":  s.FullName,
		"position":   s.Position,
		"inn":        s.INN,
		"ecp_number": s.ECPNumber,
		"valid_from": s.ValidFrom,
		"valid_to":   s.ValidTo,
	}
}

func scanSignature(sc scanner) (domain.DigitalSignature, error) {
	var (
		s        domain.DigitalSignature
		from, to pgtype.Date
	)
	if err := sc.Scan(&s.ID, &s.FullName, &s.Position, &s.INN, &s.ECPNumber, &from, &to); err != nil {
		return domain.DigitalSignature{}, notFound(err)
	}
	s.ValidFrom, s.ValidTo = from.Time, to.Time
	return s, nil
}
