package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hr-ops/internal/domain"
)

// VerificationRepo defines the persistence operations for measuring
// instruments on the verification schedule.
type VerificationRepo interface {
	// Create and Update return domain.ErrConflict when the serial number is
	// already registered.
	Create(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error)
	// List orders instruments by next verification date, soonest first.
	List(ctx context.Context) ([]domain.MeasuringInstrument, error)
	Update(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	Delete(ctx context.Context, id int64) error
}

type pgVerificationRepo struct {
	db db
}

// NewVerificationRepo constructs a VerificationRepo backed by the provided db connection.
func NewVerificationRepo(db db) VerificationRepo {
	return &pgVerificationRepo{db: db}
}

const instrumentColumns = `id, name, type, COALESCE(serial_number, ''), inventory_number, last_verification, next_verification, notes`

func (r *pgVerificationRepo) Create(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	const q = `
		INSERT INTO measuring_instruments (name, type, serial_number, inventory_number, last_verification, next_verification, notes)
		VALUES (@name, @type, NULLIF(@serial_number, ''), @inventory_number, @last_verification, @next_verification, @notes)
		RETURNING ` + instrumentColumns

	result, err := scanInstrument(r.db.QueryRow(ctx, q, instrumentArgs(m)))
	if err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("repo.VerificationRepo.Create: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgVerificationRepo) GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error) {
	const q = `SELECT ` + instrumentColumns + ` FROM measuring_instruments WHERE id = @id`

	result, err := scanInstrument(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("repo.VerificationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVerificationRepo) List(ctx context.Context) ([]domain.MeasuringInstrument, error) {
	const q = `SELECT ` + instrumentColumns + ` FROM measuring_instruments ORDER BY next_verification, name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VerificationRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.MeasuringInstrument{}
	for rows.Next() {
		m, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VerificationRepo.List: scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VerificationRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgVerificationRepo) Update(ctx context.Context, m domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	const q = `
		UPDATE measuring_instruments
		SET name              = @name,
		    type              = @type,
		    serial_number     = NULLIF(@serial_number, ''),
		    inventory_number  = @inventory_number,
		    last_verification = @last_verification,
		    next_verification = @next_verification,
		    notes             = @notes
		WHERE id = @id
		RETURNING ` + instrumentColumns

	args := instrumentArgs(m)
	args["id"] = m.ID
	result, err := scanInstrument(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.MeasuringInstrument{}, fmt.Errorf("repo.VerificationRepo.Update: %w", classify(err, domain.ErrValidation))
	}
	return result, nil
}

func (r *pgVerificationRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM measuring_instruments WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.VerificationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VerificationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func instrumentArgs(m domain.MeasuringInstrument) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":              m.Name,
		"type":              m.Type,
		"serial_number":     m.SerialNumber,
		"inventory_number":  m.InventoryNumber,
		"last_verification": m.LastVerification,
		"next_verification": m.NextVerification,
		"notes":             m.Notes,
	}
}

func scanInstrument(sc scanner) (domain.MeasuringInstrument, error) {
	var (
		m          domain.MeasuringInstrument
		last, next pgtype.Date
	)
	err := sc.Scan(&m.ID, &m.Name, &m.Type, &m.SerialNumber, &m.InventoryNumber, &last, &next, &m.Notes)
	if err != nil {
		return domain.MeasuringInstrument{}, notFound(err)
	}
	m.LastVerification, m.NextVerification = last.Time, next.Time
	return m, nil
}
