package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/hr-ops/internal/domain"
)

// EquipmentRepo defines the persistence operations for maintained equipment
// and its service definitions. Service definitions belong to exactly one
// equipment item and are always written as a complete set.
type EquipmentRepo interface {
	Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	// Update overwrites the equipment row and replaces its service definitions.
	Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	// Delete removes the equipment; its services go through ON DELETE CASCADE.
	Delete(ctx context.Context, id int64) error
}

type pgEquipmentRepo struct {
	db db
}

// NewEquipmentRepo constructs an EquipmentRepo backed by the provided db connection.
func NewEquipmentRepo(db db) EquipmentRepo {
	return &pgEquipmentRepo{db: db}
}

func (r *pgEquipmentRepo) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	const q = `
		INSERT INTO equipment (name, serial_number, location, start_date)
		VALUES (@name, NULLIF(@serial_number, ''), @location, @start_date)
		RETURNING id`

	var result domain.Equipment
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, q, equipmentArgs(e)).Scan(&id); err != nil {
			return classify(err, domain.ErrValidation)
		}
		if err := insertServices(ctx, tx, id, e.Services); err != nil {
			return err
		}
		var err error
		result, err = getEquipment(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEquipmentRepo) GetByID(ctx context.Context, id int64) (domain.Equipment, error) {
	result, err := getEquipment(ctx, r.db, id)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	const q = `
		SELECT id, name, COALESCE(serial_number, ''), location, start_date
		FROM equipment
		ORDER BY name, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.EquipmentRepo.List: %w", err)
	}
	defer rows.Close()

	items := []domain.Equipment{}
	index := map[int64]int{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EquipmentRepo.List: scan: %w", err)
		}
		index[e.ID] = len(items)
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EquipmentRepo.List: rows: %w", err)
	}

	services, err := listServices(ctx, r.db, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.EquipmentRepo.List: %w", err)
	}
	for _, s := range services {
		if i, ok := index[s.EquipmentID]; ok {
			items[i].Services = append(items[i].Services, s)
		}
	}
	return items, nil
}

func (r *pgEquipmentRepo) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	const q = `
		UPDATE equipment
		SET name          = @name,
		    serial_number = NULLIF(@serial_number, ''),
		    location      = @location,
		    start_date    = @start_date
		WHERE id = @id
		RETURNING id`

	const clear = `DELETE FROM maintenance_services WHERE equipment_id = @equipment_id`

	var result domain.Equipment
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		args := equipmentArgs(e)
		args["id"] = e.ID

		var id int64
		if err := tx.QueryRow(ctx, q, args).Scan(&id); err != nil {
			return classify(notFound(err), domain.ErrValidation)
		}
		if _, err := tx.Exec(ctx, clear, pgx.NamedArgs{"equipment_id": id}); err != nil {
			return err
		}
		if err := insertServices(ctx, tx, id, e.Services); err != nil {
			return err
		}
		var err error
		result, err = getEquipment(ctx, tx, id)
		return err
	})
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("repo.EquipmentRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEquipmentRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM equipment WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.EquipmentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EquipmentRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func equipmentArgs(e domain.Equipment) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          e.Name,
		"serial_number": e.SerialNumber,
		"location":      e.Location,
		"start_date":    e.StartDate,
	}
}

func insertServices(ctx context.Context, tx pgx.Tx, equipmentID int64, services []domain.ServiceDefinition) error {
	if len(services) == 0 {
		return nil
	}
	const q = `
		INSERT INTO maintenance_services (equipment_id, name, frequency)
		SELECT @equipment_id, s.name, s.frequency
		FROM unnest(@names::text[], @frequencies::text[]) WITH ORDINALITY AS s(name, frequency, ord)
		ORDER BY s.ord`

	names := make([]string, len(services))
	frequencies := make([]string, len(services))
	for i, s := range services {
		names[i] = s.Name
		frequencies[i] = string(s.Frequency)
	}
	_, err := tx.Exec(ctx, q, pgx.NamedArgs{
		"equipment_id": equipmentID,
		"names":        names,
		"frequencies":  frequencies,
	})
	if err != nil {
		return fmt.Errorf("insert services: %w", classify(err, domain.ErrValidation))
	}
	return nil
}

func getEquipment(ctx context.Context, db db, id int64) (domain.Equipment, error) {
	const q = `
		SELECT id, name, COALESCE(serial_number, ''), location, start_date
		FROM equipment
		WHERE id = @id`

	e, err := scanEquipment(db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Equipment{}, err
	}
	e.Services, err = listServices(ctx, db, &id)
	if err != nil {
		return domain.Equipment{}, err
	}
	return e, nil
}

// listServices returns service definitions in insertion order, optionally
// restricted to one equipment item.
func listServices(ctx context.Context, db db, equipmentID *int64) ([]domain.ServiceDefinition, error) {
	const q = `
		SELECT id, equipment_id, name, frequency
		FROM maintenance_services
		WHERE (@equipment_id::bigint IS NULL OR equipment_id = @equipment_id)
		ORDER BY equipment_id, id`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"equipment_id": equipmentID})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	services := []domain.ServiceDefinition{}
	for rows.Next() {
		var (
			s    domain.ServiceDefinition
			freq string
		)
		if err := rows.Scan(&s.ID, &s.EquipmentID, &s.Name, &freq); err != nil {
			return nil, fmt.Errorf("list services: scan: %w", err)
		}
		s.Frequency = domain.Frequency(freq)
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list services: rows: %w", err)
	}
	return services, nil
}

func scanEquipment(s scanner) (domain.Equipment, error) {
	var (
		e         domain.Equipment
		startDate pgtype.Date
	)
	if err := s.Scan(&e.ID, &e.Name, &e.SerialNumber, &e.Location, &startDate); err != nil {
		return domain.Equipment{}, notFound(err)
	}
	e.StartDate = startDate.Time
	e.Services = []domain.ServiceDefinition{}
	return e, nil
}
