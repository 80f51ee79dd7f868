// Package gormrepo is the embedded SQLite implementation of repo.Store,
// built on gorm. It backs single-node deployments and tests that should run
// without a Postgres server.
package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// Open connects to the SQLite database at dsn and creates the schema.
// SQLite allows a single writer, so the pool is capped at one connection;
// this also keeps shared-cache in-memory databases from reporting
// SQLITE_LOCKED under concurrent use.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gormrepo.Open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gormrepo.Open: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("gormrepo.Open: migrate: %w", err)
	}
	return db, nil
}

type store struct {
	db   *gorm.DB
	mu   *sync.Mutex
	inTx bool
}

// New constructs a repo.Store on top of an opened gorm database.
func New(db *gorm.DB) repo.Store {
	return &store{db: db, mu: &sync.Mutex{}}
}

func (s *store) Employees() repo.EmployeeRepo {
	return &employeeRepo{db: s.db, exclusive: s.exclusive}
}

func (s *store) Organizations() repo.OrganizationRepo {
	return &organizationRepo{db: s.db, exclusive: s.exclusive}
}

func (s *store) Trips() repo.TripRepo           { return &tripRepo{db: s.db, exclusive: s.exclusive} }
func (s *store) Vacations() repo.VacationRepo   { return &vacationRepo{db: s.db, exclusive: s.exclusive} }
func (s *store) Conflicts() repo.ConflictFinder { return &conflictFinder{db: s.db} }
func (s *store) Equipment() repo.EquipmentRepo  { return &equipmentRepo{db: s.db} }
func (s *store) Signatures() repo.SignatureRepo { return &signatureRepo{db: s.db} }

func (s *store) Verification() repo.VerificationRepo { return &verificationRepo{db: s.db} }

// WithTx holds the store's writer lock for the whole transaction. Nested
// calls reuse the lock already held and become savepoints.
func (s *store) WithTx(ctx context.Context, fn func(tx repo.Store) error) error {
	return s.exclusive(ctx, func(tx *gorm.DB) error {
		return fn(&store{db: tx, mu: s.mu, inTx: true})
	})
}

// txFunc runs fn inside one transaction.
type txFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error

// exclusive runs fn in a transaction under the writer lock. Every write
// that checks a reference before acting on it goes through here, so the
// check and the write see no other writer in between.
func (s *store) exclusive(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if !s.inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// LockEmployees is satisfied by the writer lock WithTx already holds: every
// booking transaction on this store is serialised, which is a superset of
// per-employee serialisation.
func (s *store) LockEmployees(ctx context.Context, employeeIDs []int64) error {
	if !s.inTx {
		return errors.New("gormrepo.LockEmployees: must be called inside WithTx")
	}
	return ctx.Err()
}

// classify maps gorm's translated driver errors onto domain sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return err
}

// requireEmployees fails with ErrValidation unless every id names an
// existing employee.
func requireEmployees(db *gorm.DB, ids []int64) error {
	unique := domain.NormalizeIDs(ids)
	if len(unique) == 0 {
		return nil
	}
	var n int64
	if err := db.Model(&employeeModel{}).Where("id IN ?", unique).Count(&n).Error; err != nil {
		return err
	}
	if int(n) != len(unique) {
		return fmt.Errorf("%w: unknown employee", domain.ErrValidation)
	}
	return nil
}

func requireOrganization(db *gorm.DB, id *int64) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := db.Model(&organizationModel{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: unknown organization %d", domain.ErrValidation, *id)
	}
	return nil
}
