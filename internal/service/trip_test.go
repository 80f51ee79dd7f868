package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/service"
)

// ---- helpers ---------------------------------------------------------------

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validTrip() domain.Trip {
	return domain.Trip{
		Destination:    "Kazan",
		StartDate:      day(2025, 6, 1),
		EndDate:        day(2025, 6, 15),
		Transport:      domain.TransportCar,
		ParticipantIDs: []int64{3, 1},
	}
}

// echoStore is a store whose writes echo the input back and whose conflict
// finder never finds anything.
func echoStore() *mockStore {
	return &mockStore{
		conflicts: noConflicts(),
		trips: &mockTripRepo{
			create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
				t.ID = 10
				return t, nil
			},
			update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		},
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	store := echoStore()
	svc := service.NewTripService(store, discardLogger())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Equal(t, []int64{1, 3}, got.ParticipantIDs, "participants are normalised before the write")
	assert.Equal(t, 1, store.txCalls, "check and write share one transaction")
	assert.Equal(t, [][]int64{{1, 3}}, store.locked)
}

func TestTripService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
	}{
		{"blank destination", func(tr *domain.Trip) { tr.Destination = "   " }},
		{"no participants", func(tr *domain.Trip) { tr.ParticipantIDs = nil }},
		{"end before start", func(tr *domain.Trip) { tr.EndDate = tr.StartDate.AddDate(0, 0, -1) }},
		{"missing start", func(tr *domain.Trip) { tr.StartDate = time.Time{} }},
		{"unknown transport", func(tr *domain.Trip) { tr.Transport = "boat" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{} // any repo call would panic
			svc := service.NewTripService(store, discardLogger())

			trip := validTrip()
			tc.mutate(&trip)
			_, err := svc.Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, store.txCalls, "validation happens before any store access")
		})
	}
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := service.NewTripService(echoStore(), discardLogger())

	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_Conflict(t *testing.T) {
	busy := domain.ConflictingEmployee{ID: 3, LastName: "Petrov", FirstName: "Sergey"}
	store := echoStore()
	store.conflicts = &mockConflictFinder{
		find: func(_ context.Context, ids []int64, r domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
			assert.Equal(t, []int64{1, 3}, ids)
			assert.Equal(t, domain.NewDateRange(day(2025, 6, 1), day(2025, 6, 15)), r)
			assert.Nil(t, opts.ExcludeTripID)
			return &busy, nil
		},
	}
	store.trips.create = func(context.Context, domain.Trip) (domain.Trip, error) {
		t.Fatal("a conflicting trip must not be written")
		return domain.Trip{}, nil
	}
	svc := service.NewTripService(store, discardLogger())

	_, err := svc.Create(context.Background(), validTrip())

	require.ErrorIs(t, err, domain.ErrConflict)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, busy, conflict.Employee)
	assert.Contains(t, err.Error(), "Petrov Sergey")
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	store := echoStore()
	store.trips.create = func(context.Context, domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, repoErr
	}
	svc := service.NewTripService(store, discardLogger())

	_, err := svc.Create(context.Background(), validTrip())

	// The service should propagate repo errors unchanged.
	assert.ErrorIs(t, err, repoErr)
}

func TestTripService_Create_FinderError(t *testing.T) {
	finderErr := errors.New("connection reset")
	store := echoStore()
	store.conflicts.find = func(context.Context, []int64, domain.DateRange, domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
		return nil, finderErr
	}
	svc := service.NewTripService(store, discardLogger())

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, finderErr)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

// ---- GetByID / List tests --------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	store := &mockStore{trips: &mockTripRepo{
		getByID: func(context.Context, int64) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}}
	svc := service.NewTripService(store, discardLogger())

	_, err := svc.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_PassesFilterAndReturnsEmptySlice(t *testing.T) {
	year := 2025
	store := &mockStore{trips: &mockTripRepo{
		list: func(_ context.Context, f domain.TripFilter) ([]domain.Trip, error) {
			require.NotNil(t, f.Year)
			assert.Equal(t, 2025, *f.Year)
			return nil, nil
		},
	}}
	svc := service.NewTripService(store, discardLogger())

	got, err := svc.List(context.Background(), domain.TripFilter{Year: &year})

	require.NoError(t, err)
	// Should return an empty slice, not nil — callers can safely range over it.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Update tests ----------------------------------------------------------

func TestTripService_Update_ExcludesItself(t *testing.T) {
	store := echoStore()
	store.conflicts.find = func(_ context.Context, _ []int64, _ domain.DateRange, opts domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
		require.NotNil(t, opts.ExcludeTripID)
		assert.Equal(t, int64(7), *opts.ExcludeTripID)
		assert.Nil(t, opts.ExcludeVacationID)
		return nil, nil
	}
	svc := service.NewTripService(store, discardLogger())

	trip := validTrip()
	trip.ID = 7
	trip.Destination = "Samara"

	got, err := svc.Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Samara", got.Destination)
	assert.Equal(t, 1, store.txCalls)
}

func TestTripService_Update_NotFound(t *testing.T) {
	store := echoStore()
	store.trips.update = func(context.Context, domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, domain.ErrNotFound
	}
	svc := service.NewTripService(store, discardLogger())

	trip := validTrip()
	trip.ID = 404

	_, err := svc.Update(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete tests ----------------------------------------------------------

func TestTripService_Delete(t *testing.T) {
	tests := []struct {
		name    string
		deleted int64
		wantErr error
	}{
		{"deleted", 1, nil},
		{"missing", 0, domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockStore{trips: &mockTripRepo{
				delete: func(context.Context, int64) (int64, error) { return tc.deleted, nil },
			}}
			svc := service.NewTripService(store, discardLogger())

			err := svc.Delete(context.Background(), 5)

			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// ---- FindConflictingEmployee tests -----------------------------------------

func TestTripService_FindConflictingEmployee(t *testing.T) {
	store := &mockStore{conflicts: &mockConflictFinder{
		find: func(_ context.Context, ids []int64, _ domain.DateRange, _ domain.ConflictOptions) (*domain.ConflictingEmployee, error) {
			assert.Equal(t, []int64{2, 5}, ids)
			return &domain.ConflictingEmployee{ID: 5, LastName: "Ivanova", FirstName: "Anna"}, nil
		},
	}}
	svc := service.NewTripService(store, discardLogger())

	got, err := svc.FindConflictingEmployee(context.Background(), []int64{5, 2, 5},
		domain.NewDateRange(day(2025, 1, 1), day(2025, 1, 1)), domain.ConflictOptions{})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ivanova Anna", got.DisplayName())
	assert.Zero(t, store.txCalls, "the pre-check is read-only")
}

func TestTripService_FindConflictingEmployee_Validation(t *testing.T) {
	svc := service.NewTripService(&mockStore{}, discardLogger())
	ctx := context.Background()

	_, err := svc.FindConflictingEmployee(ctx, nil, domain.NewDateRange(day(2025, 1, 1), day(2025, 1, 2)), domain.ConflictOptions{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.FindConflictingEmployee(ctx, []int64{1}, domain.NewDateRange(day(2025, 1, 2), day(2025, 1, 1)), domain.ConflictOptions{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
