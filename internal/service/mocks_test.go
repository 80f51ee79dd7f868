package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// The doubles below are hand-written: each method is a function field, set
// only the ones a test needs. Calling an unset field panics, which flags an
// unexpected repo call.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id int64) (domain.Trip, error)
	list    func(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id int64) (int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, filter)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return m.delete(ctx, id)
}

type mockVacationRepo struct {
	create  func(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	getByID func(ctx context.Context, id int64) (domain.Vacation, error)
	list    func(ctx context.Context, employeeID *int64) ([]domain.Vacation, error)
	update  func(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	delete  func(ctx context.Context, id int64) (int64, error)
}

func (m *mockVacationRepo) Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	return m.create(ctx, v)
}
func (m *mockVacationRepo) GetByID(ctx context.Context, id int64) (domain.Vacation, error) {
	return m.getByID(ctx, id)
}
func (m *mockVacationRepo) List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error) {
	return m.list(ctx, employeeID)
}
func (m *mockVacationRepo) Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	return m.update(ctx, v)
}
func (m *mockVacationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	return m.delete(ctx, id)
}

type mockEmployeeRepo struct {
	create  func(ctx context.Context, e domain.Employee) (domain.Employee, error)
	getByID func(ctx context.Context, id int64) (domain.Employee, error)
	list    func(ctx context.Context) ([]domain.Employee, error)
	update  func(ctx context.Context, e domain.Employee) (domain.Employee, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockEmployeeRepo) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	return m.create(ctx, e)
}
func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	return m.getByID(ctx, id)
}
func (m *mockEmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	return m.list(ctx)
}
func (m *mockEmployeeRepo) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	return m.update(ctx, e)
}
func (m *mockEmployeeRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockOrganizationRepo struct {
	create  func(ctx context.Context, o domain.Organization) (domain.Organization, error)
	getByID func(ctx context.Context, id int64) (domain.Organization, error)
	list    func(ctx context.Context) ([]domain.Organization, error)
	update  func(ctx context.Context, o domain.Organization) (domain.Organization, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockOrganizationRepo) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	return m.create(ctx, o)
}
func (m *mockOrganizationRepo) GetByID(ctx context.Context, id int64) (domain.Organization, error) {
	return m.getByID(ctx, id)
}
func (m *mockOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	return m.list(ctx)
}
func (m *mockOrganizationRepo) Update(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	return m.update(ctx, o)
}
func (m *mockOrganizationRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockEquipmentRepo struct {
	create  func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	getByID func(ctx context.Context, id int64) (domain.Equipment, error)
	list    func(ctx context.Context) ([]domain.Equipment, error)
	update  func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockEquipmentRepo) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.create(ctx, e)
}
func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int64) (domain.Equipment, error) {
	return m.getByID(ctx, id)
}
func (m *mockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	return m.list(ctx)
}
func (m *mockEquipmentRepo) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.update(ctx, e)
}
func (m *mockEquipmentRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockSignatureRepo struct {
	create  func(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	getByID func(ctx context.Context, id int64) (domain.DigitalSignature, error)
	list    func(ctx context.Context) ([]domain.DigitalSignature, error)
	update  func(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockSignatureRepo) Create(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	return m.create(ctx, s)
}
func (m *mockSignatureRepo) GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error) {
	return m.getByID(ctx, id)
}
func (m *mockSignatureRepo) List(ctx context.Context) ([]domain.DigitalSignature, error) {
	return m.list(ctx)
}
func (m *mockSignatureRepo) Update(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	return m.update(ctx, s)
}
func (m *mockSignatureRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockVerificationRepo struct {
	create  func(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	getByID func(ctx context.Context, id int64) (domain.MeasuringInstrument, error)
	list    func(ctx context.Context) ([]domain.MeasuringInstrument, error)
	update  func(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockVerificationRepo) Create(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	return m.create(ctx, in)
}
func (m *mockVerificationRepo) GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error) {
	return m.getByID(ctx, id)
}
func (m *mockVerificationRepo) List(ctx context.Context) ([]domain.MeasuringInstrument, error) {
	return m.list(ctx)
}
func (m *mockVerificationRepo) Update(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	return m.update(ctx, in)
}
func (m *mockVerificationRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockConflictFinder struct {
	find func(ctx context.Context, ids []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error)
}

func (m *mockConflictFinder) FindConflictingEmployee(ctx context.Context, ids []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
	return m.find(ctx, ids, r, opts)
}

// mockStore wires the repo doubles together. WithTx runs fn against the same
// store and records the call sequence so tests can assert that the lock,
// the check and the write all happen inside one transaction.
type mockStore struct {
	employees     *mockEmployeeRepo
	organizations *mockOrganizationRepo
	trips         *mockTripRepo
	vacations     *mockVacationRepo
	conflicts     *mockConflictFinder
	equipment     *mockEquipmentRepo
	signatures    *mockSignatureRepo
	verification  *mockVerificationRepo

	txCalls int
	locked  [][]int64
	inTx    bool
}

func (m *mockStore) Employees() repo.EmployeeRepo         { return m.employees }
func (m *mockStore) Organizations() repo.OrganizationRepo { return m.organizations }
func (m *mockStore) Trips() repo.TripRepo                 { return m.trips }
func (m *mockStore) Vacations() repo.VacationRepo         { return m.vacations }
func (m *mockStore) Conflicts() repo.ConflictFinder       { return m.conflicts }
func (m *mockStore) Equipment() repo.EquipmentRepo        { return m.equipment }
func (m *mockStore) Signatures() repo.SignatureRepo       { return m.signatures }
func (m *mockStore) Verification() repo.VerificationRepo  { return m.verification }

func (m *mockStore) WithTx(_ context.Context, fn func(tx repo.Store) error) error {
	m.txCalls++
	m.inTx = true
	defer func() { m.inTx = false }()
	return fn(m)
}

func (m *mockStore) LockEmployees(_ context.Context, ids []int64) error {
	if !m.inTx {
		panic("LockEmployees called outside WithTx")
	}
	m.locked = append(m.locked, ids)
	return nil
}

// compile-time checks: every double must satisfy its interface.
var (
	_ repo.Store            = (*mockStore)(nil)
	_ repo.TripRepo         = (*mockTripRepo)(nil)
	_ repo.VacationRepo     = (*mockVacationRepo)(nil)
	_ repo.EmployeeRepo     = (*mockEmployeeRepo)(nil)
	_ repo.OrganizationRepo = (*mockOrganizationRepo)(nil)
	_ repo.EquipmentRepo    = (*mockEquipmentRepo)(nil)
	_ repo.ConflictFinder   = (*mockConflictFinder)(nil)
	_ repo.SignatureRepo    = (*mockSignatureRepo)(nil)
	_ repo.VerificationRepo = (*mockVerificationRepo)(nil)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noConflicts is a finder that never reports a busy employee.
func noConflicts() *mockConflictFinder {
	return &mockConflictFinder{
		find: func(context.Context, []int64, domain.DateRange, domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
			return nil, nil
		},
	}
}
