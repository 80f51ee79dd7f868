package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/events"
	"github.com/pkordes/hr-ops/internal/handler"
)

// Each mock below is a test double for one servicer interface.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id int64) (domain.Trip, error)
	list         func(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, id int64) error
	findConflict func(ctx context.Context, ids []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, f)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) FindConflictingEmployee(ctx context.Context, ids []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
	return m.findConflict(ctx, ids, r, opts)
}

type mockVacationServicer struct {
	create  func(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	getByID func(ctx context.Context, id int64) (domain.Vacation, error)
	list    func(ctx context.Context, employeeID *int64) ([]domain.Vacation, error)
	update  func(ctx context.Context, v domain.Vacation) (domain.Vacation, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockVacationServicer) Create(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	return m.create(ctx, v)
}
func (m *mockVacationServicer) GetByID(ctx context.Context, id int64) (domain.Vacation, error) {
	return m.getByID(ctx, id)
}
func (m *mockVacationServicer) List(ctx context.Context, employeeID *int64) ([]domain.Vacation, error) {
	return m.list(ctx, employeeID)
}
func (m *mockVacationServicer) Update(ctx context.Context, v domain.Vacation) (domain.Vacation, error) {
	return m.update(ctx, v)
}
func (m *mockVacationServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockEmployeeServicer struct {
	create  func(ctx context.Context, e domain.Employee) (domain.Employee, error)
	getByID func(ctx context.Context, id int64) (domain.Employee, error)
	list    func(ctx context.Context) ([]domain.Employee, error)
	update  func(ctx context.Context, e domain.Employee) (domain.Employee, error)
	delete  func(ctx context.Context, id int64) error
	profile func(ctx context.Context, id int64) (domain.EmployeeProfile, error)
	trips   func(ctx context.Context, id int64) ([]domain.Trip, error)
}

func (m *mockEmployeeServicer) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	return m.create(ctx, e)
}
func (m *mockEmployeeServicer) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	return m.getByID(ctx, id)
}
func (m *mockEmployeeServicer) List(ctx context.Context) ([]domain.Employee, error) {
	return m.list(ctx)
}
func (m *mockEmployeeServicer) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	return m.update(ctx, e)
}
func (m *mockEmployeeServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockEmployeeServicer) Profile(ctx context.Context, id int64) (domain.EmployeeProfile, error) {
	return m.profile(ctx, id)
}
func (m *mockEmployeeServicer) Trips(ctx context.Context, id int64) ([]domain.Trip, error) {
	return m.trips(ctx, id)
}

type mockOrganizationServicer struct {
	create  func(ctx context.Context, o domain.Organization) (domain.Organization, error)
	getByID func(ctx context.Context, id int64) (domain.Organization, error)
	list    func(ctx context.Context) ([]domain.Organization, error)
	update  func(ctx context.Context, o domain.Organization) (domain.Organization, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockOrganizationServicer) Create(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	return m.create(ctx, o)
}
func (m *mockOrganizationServicer) GetByID(ctx context.Context, id int64) (domain.Organization, error) {
	return m.getByID(ctx, id)
}
func (m *mockOrganizationServicer) List(ctx context.Context) ([]domain.Organization, error) {
	return m.list(ctx)
}
func (m *mockOrganizationServicer) Update(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	return m.update(ctx, o)
}
func (m *mockOrganizationServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

type mockMaintenanceServicer struct {
	create   func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	getByID  func(ctx context.Context, id int64) (domain.Equipment, error)
	list     func(ctx context.Context) ([]domain.Equipment, error)
	update   func(ctx context.Context, e domain.Equipment) (domain.Equipment, error)
	delete   func(ctx context.Context, id int64) error
	schedule func(ctx context.Context, id int64, years int) ([]domain.ProjectedDate, error)
	project  func(start time.Time, services []domain.ServiceDefinition, years int) ([]domain.ProjectedDate, error)
}

func (m *mockMaintenanceServicer) Create(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.create(ctx, e)
}
func (m *mockMaintenanceServicer) GetByID(ctx context.Context, id int64) (domain.Equipment, error) {
	return m.getByID(ctx, id)
}
func (m *mockMaintenanceServicer) List(ctx context.Context) ([]domain.Equipment, error) {
	return m.list(ctx)
}
func (m *mockMaintenanceServicer) Update(ctx context.Context, e domain.Equipment) (domain.Equipment, error) {
	return m.update(ctx, e)
}
func (m *mockMaintenanceServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockMaintenanceServicer) Schedule(ctx context.Context, id int64, years int) ([]domain.ProjectedDate, error) {
	return m.schedule(ctx, id, years)
}
func (m *mockMaintenanceServicer) Project(start time.Time, services []domain.ServiceDefinition, years int) ([]domain.ProjectedDate, error) {
	return m.project(start, services, years)
}

type mockSignatureServicer struct {
	create  func(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	getByID func(ctx context.Context, id int64) (domain.DigitalSignature, error)
	list    func(ctx context.Context) ([]domain.DigitalSignature, error)
	update  func(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error)
	delete  func(ctx context.Context, id int64) error
	stats   func(ctx context.Context) (domain.ExpiryStats, error)
}

func (m *mockSignatureServicer) Create(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	return m.create(ctx, s)
}
func (m *mockSignatureServicer) GetByID(ctx context.Context, id int64) (domain.DigitalSignature, error) {
	return m.getByID(ctx, id)
}
func (m *mockSignatureServicer) List(ctx context.Context) ([]domain.DigitalSignature, error) {
	return m.list(ctx)
}
func (m *mockSignatureServicer) Update(ctx context.Context, s domain.DigitalSignature) (domain.DigitalSignature, error) {
	return m.update(ctx, s)
}
func (m *mockSignatureServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockSignatureServicer) Stats(ctx context.Context) (domain.ExpiryStats, error) {
	return m.stats(ctx)
}

type mockVerificationServicer struct {
	create  func(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	getByID func(ctx context.Context, id int64) (domain.MeasuringInstrument, error)
	list    func(ctx context.Context) ([]domain.MeasuringInstrument, error)
	update  func(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error)
	delete  func(ctx context.Context, id int64) error
	stats   func(ctx context.Context) (domain.ExpiryStats, error)
}

func (m *mockVerificationServicer) Create(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	return m.create(ctx, in)
}
func (m *mockVerificationServicer) GetByID(ctx context.Context, id int64) (domain.MeasuringInstrument, error) {
	return m.getByID(ctx, id)
}
func (m *mockVerificationServicer) List(ctx context.Context) ([]domain.MeasuringInstrument, error) {
	return m.list(ctx)
}
func (m *mockVerificationServicer) Update(ctx context.Context, in domain.MeasuringInstrument) (domain.MeasuringInstrument, error) {
	return m.update(ctx, in)
}
func (m *mockVerificationServicer) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}
func (m *mockVerificationServicer) Stats(ctx context.Context) (domain.ExpiryStats, error) {
	return m.stats(ctx)
}

type mockRecordsServicer struct {
	records       func(ctx context.Context) ([]domain.EmployeeRecord, error)
	invalidations int
}

func (m *mockRecordsServicer) Records(ctx context.Context) ([]domain.EmployeeRecord, error) {
	return m.records(ctx)
}
func (m *mockRecordsServicer) Invalidate() { m.invalidations++ }

// recordingBroker records published event types and never delivers them.
type recordingBroker struct {
	mu        sync.Mutex
	published []string
}

func (b *recordingBroker) Publish(eventType string) events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, eventType)
	return events.Event{ID: "test", Type: eventType}
}

func (b *recordingBroker) Subscribe() (<-chan events.Event, func()) {
	ch := make(chan events.Event)
	return ch, func() { close(ch) }
}

func (b *recordingBroker) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.published...)
}

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TripServicer         = (*mockTripServicer)(nil)
	_ handler.VacationServicer     = (*mockVacationServicer)(nil)
	_ handler.EmployeeServicer     = (*mockEmployeeServicer)(nil)
	_ handler.OrganizationServicer = (*mockOrganizationServicer)(nil)
	_ handler.MaintenanceServicer  = (*mockMaintenanceServicer)(nil)
	_ handler.SignatureServicer    = (*mockSignatureServicer)(nil)
	_ handler.VerificationServicer = (*mockVerificationServicer)(nil)
	_ handler.RecordsServicer      = (*mockRecordsServicer)(nil)
	_ handler.EventBroker          = (*recordingBroker)(nil)
)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHTTPHandler wires a Server with the given services into the real router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	srv := handler.NewServer(svc, discardLogger())
	return handler.NewRouter(srv, handler.RouterOptions{
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 1 << 20,
	})
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
