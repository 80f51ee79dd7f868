package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
	"github.com/pkordes/hr-ops/testutil"
)

// newTestStore opens a transaction against the test database and returns a
// Store backed by that transaction. The transaction is automatically rolled
// back when the test finishes, giving free per-test isolation.
func newTestStore(t *testing.T) repo.Store {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.NewStore(tx)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedEmployee inserts an employee with a unique name and returns its ID.
func seedEmployee(t *testing.T, s repo.Store, last string) int64 {
	t.Helper()
	e, err := s.Employees().Create(context.Background(), domain.Employee{
		LastName:  last,
		FirstName: "Test",
		Position:  "Engineer",
	})
	require.NoError(t, err)
	return e.ID
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(participants ...int64) domain.Trip {
	return domain.Trip{
		Destination:    "Novosibirsk",
		StartDate:      day(2025, 6, 1),
		EndDate:        day(2025, 6, 15),
		Transport:      domain.TransportPlane,
		ParticipantIDs: participants,
	}
}

func TestTripRepo_Create(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")
	b := seedEmployee(t, s, "Bravo")

	got, err := s.Trips().Create(ctx, tripFixture(b, a))

	require.NoError(t, err)
	assert.NotZero(t, got.ID, "ID should be DB-generated")
	assert.Equal(t, "Novosibirsk", got.Destination)
	assert.True(t, got.StartDate.Equal(day(2025, 6, 1)), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(day(2025, 6, 15)), "EndDate mismatch")
	assert.Equal(t, domain.TransportPlane, got.Transport)
	assert.Nil(t, got.OrganizationID)
	assert.ElementsMatch(t, []int64{a, b}, got.ParticipantIDs)
}

func TestTripRepo_Create_WithOrganization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")
	org, err := s.Organizations().Create(ctx, domain.Organization{Name: "Plant #1", City: "Omsk"})
	require.NoError(t, err)

	trip := tripFixture(a)
	trip.OrganizationID = &org.ID
	trip.Transport = domain.TransportNone

	got, err := s.Trips().Create(ctx, trip)

	require.NoError(t, err)
	require.NotNil(t, got.OrganizationID)
	assert.Equal(t, org.ID, *got.OrganizationID)
	assert.Equal(t, domain.TransportNone, got.Transport)
}

// A repeated participant violates the trip_participants primary key after the
// trip row is inserted; the whole aggregate must roll back.
func TestTripRepo_Create_IsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")

	before, err := s.Trips().List(ctx, domain.TripFilter{})
	require.NoError(t, err)

	_, err = s.Trips().Create(ctx, tripFixture(a, a))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	after, err := s.Trips().List(ctx, domain.TripFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before), "no partial trip may persist")
}

func TestTripRepo_Create_UnknownEmployee(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Trips().Create(context.Background(), tripFixture(987654321))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Trips().GetByID(context.Background(), 987654321)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")
	b := seedEmployee(t, s, "Bravo")

	t1 := tripFixture(a)
	t2 := tripFixture(b)
	t2.StartDate = day(2026, 2, 1)
	t2.EndDate = day(2026, 2, 3)

	_, err := s.Trips().Create(ctx, t1)
	require.NoError(t, err)
	_, err = s.Trips().Create(ctx, t2)
	require.NoError(t, err)

	year := 2026
	got, err := s.Trips().List(ctx, domain.TripFilter{Year: &year})
	require.NoError(t, err)
	for _, tr := range got {
		assert.Equal(t, 2026, tr.StartDate.Year())
	}

	got, err = s.Trips().List(ctx, domain.TripFilter{EmployeeID: &a})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int64{a}, got[0].ParticipantIDs)
}

func TestTripRepo_Update_ReplacesParticipants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")
	b := seedEmployee(t, s, "Bravo")
	c := seedEmployee(t, s, "Charlie")

	created, err := s.Trips().Create(ctx, tripFixture(a, b))
	require.NoError(t, err)

	created.Destination = "Tomsk"
	created.ParticipantIDs = []int64{c}
	updated, err := s.Trips().Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Tomsk", updated.Destination)
	assert.Equal(t, []int64{c}, updated.ParticipantIDs)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	s := newTestStore(t)
	a := seedEmployee(t, s, "Alpha")

	ghost := tripFixture(a)
	ghost.ID = 987654321

	_, err := s.Trips().Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")

	created, err := s.Trips().Create(ctx, tripFixture(a))
	require.NoError(t, err)

	n, err := s.Trips().Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Trips().GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")

	// The employee is no longer referenced, so it can be deleted.
	assert.NoError(t, s.Employees().Delete(ctx, a))
}

func TestTripRepo_Delete_Missing(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Trips().Delete(context.Background(), 987654321)

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEmployeeRepo_Delete_InUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")
	_, err := s.Trips().Create(ctx, tripFixture(a))
	require.NoError(t, err)

	err = s.Employees().Delete(ctx, a)

	assert.ErrorIs(t, err, domain.ErrInUse)
}

func TestEmployeeRepo_Create_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	seedEmployee(t, s, "Alpha")

	_, err := s.Employees().Create(context.Background(), domain.Employee{LastName: "Alpha", FirstName: "Test"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}
