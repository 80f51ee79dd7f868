// Package repo contains all database access logic for the HR operations API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/hr-ops/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
//
// Begin on a pgx.Tx opens a savepoint, so multi-statement writes stay atomic
// whether or not the caller already holds a transaction.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store groups the repositories that share one connection or transaction.
// Services that must combine a read and a write atomically use WithTx.
type Store interface {
	Employees() EmployeeRepo
	Organizations() OrganizationRepo
	Trips() TripRepo
	Vacations() VacationRepo
	Conflicts() ConflictFinder
	Equipment() EquipmentRepo
	Signatures() SignatureRepo
	Verification() VerificationRepo

	// WithTx runs fn with a Store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// LockEmployees blocks concurrent bookings of the given employees until
	// the enclosing transaction ends. It must be called inside WithTx.
	LockEmployees(ctx context.Context, employeeIDs []int64) error
}

// bookingLockNamespace seeds the first key of the two-key advisory lock used
// to serialise bookings per employee.
const bookingLockNamespace = 7301

// pgStore is the Postgres implementation of Store.
type pgStore struct {
	db db
}

// NewStore constructs a Store backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStore(db db) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Employees() EmployeeRepo         { return NewEmployeeRepo(s.db) }
func (s *pgStore) Organizations() OrganizationRepo { return NewOrganizationRepo(s.db) }
func (s *pgStore) Trips() TripRepo                 { return NewTripRepo(s.db) }
func (s *pgStore) Vacations() VacationRepo         { return NewVacationRepo(s.db) }
func (s *pgStore) Conflicts() ConflictFinder       { return NewConflictFinder(s.db) }
func (s *pgStore) Equipment() EquipmentRepo        { return NewEquipmentRepo(s.db) }
func (s *pgStore) Signatures() SignatureRepo       { return NewSignatureRepo(s.db) }
func (s *pgStore) Verification() VerificationRepo  { return NewVerificationRepo(s.db) }

func (s *pgStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(&pgStore{db: tx})
	})
}

// LockEmployees takes one transaction-scoped advisory lock per employee.
// Locks are acquired in ascending ID order so two bookings that share
// employees can never deadlock.
//
// The bigint id is split over both int4 keys: the high 32 bits are folded
// into the namespace key and the low 32 bits form the second key, so every
// id maps to a distinct lock.
func (s *pgStore) LockEmployees(ctx context.Context, employeeIDs []int64) error {
	const q = `
		SELECT pg_advisory_xact_lock(@namespace::int # (ids.id >> 32)::int, ids.id::bit(32)::int)
		FROM (SELECT DISTINCT unnest(@ids::bigint[]) AS id ORDER BY 1) AS ids`

	_, err := s.db.Exec(ctx, q, pgx.NamedArgs{
		"namespace": bookingLockNamespace,
		"ids":       domain.NormalizeIDs(employeeIDs),
	})
	if err != nil {
		return fmt.Errorf("repo.Store.LockEmployees: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers to
// be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify maps constraint violations onto domain sentinels so services and
// handlers never inspect driver errors. fkErr is the sentinel to use for a
// foreign key violation: ErrValidation when inserting a dangling reference,
// ErrInUse when deleting a referenced row.
func classify(err error, fkErr error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", fkErr, err)
	case pgCheckViolation:
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return err
}

// notFound converts pgx.ErrNoRows into domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
