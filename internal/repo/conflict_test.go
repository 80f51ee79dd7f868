package repo_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
	"github.com/pkordes/hr-ops/testutil"
)

func find(t *testing.T, s repo.Store, ids []int64, r domain.DateRange, opts domain.ConflictOptions) *domain.ConflictingEmployee {
	t.Helper()
	got, err := s.Conflicts().FindConflictingEmployee(context.Background(), ids, r, opts)
	require.NoError(t, err)
	return got
}

func TestConflictFinder_Trips(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")
	b := seedEmployee(t, s, "Bravo")

	trip, err := s.Trips().Create(ctx, tripFixture(a)) // 2025-06-01..2025-06-15
	require.NoError(t, err)

	tests := []struct {
		name  string
		r     domain.DateRange
		found bool
	}{
		{"inside", domain.NewDateRange(day(2025, 6, 5), day(2025, 6, 6)), true},
		{"query start equals trip end", domain.NewDateRange(day(2025, 6, 15), day(2025, 6, 20)), true},
		{"query end equals trip start", domain.NewDateRange(day(2025, 5, 20), day(2025, 6, 1)), true},
		{"before", domain.NewDateRange(day(2025, 5, 1), day(2025, 5, 31)), false},
		{"after", domain.NewDateRange(day(2025, 6, 16), day(2025, 6, 30)), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := find(t, s, []int64{b, a}, tc.r, domain.ConflictOptions{})
			if !tc.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, a, got.ID)
			assert.Equal(t, "Alpha", got.LastName)
		})
	}

	// Only B is asked about: no conflict.
	assert.Nil(t, find(t, s, []int64{b}, trip.Range(), domain.ConflictOptions{}))

	// Excluding the trip itself clears the conflict.
	assert.Nil(t, find(t, s, []int64{a}, trip.Range(), domain.ConflictOptions{ExcludeTripID: &trip.ID}))
}

func TestConflictFinder_Vacations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := seedEmployee(t, s, "Alpha")

	vac, err := s.Vacations().Create(ctx, domain.Vacation{EmployeeID: a, StartDate: day(2025, 7, 1), EndDate: day(2025, 7, 14)})
	require.NoError(t, err)

	got := find(t, s, []int64{a}, domain.NewDateRange(day(2025, 7, 14), day(2025, 7, 14)), domain.ConflictOptions{})
	require.NotNil(t, got)
	assert.Equal(t, a, got.ID)

	assert.Nil(t, find(t, s, []int64{a}, vac.Range(), domain.ConflictOptions{ExcludeVacationID: &vac.ID}))
}

func TestStore_WithTx_LockEmployees(t *testing.T) {
	s := newTestStore(t)
	a := seedEmployee(t, s, "Alpha")

	err := s.WithTx(context.Background(), func(tx repo.Store) error {
		return tx.LockEmployees(context.Background(), []int64{a, a})
	})

	assert.NoError(t, err)
}

// Ids beyond the int4 range must neither fail nor share a lock with an id
// that has the same low 32 bits.
func TestStore_LockEmployees_BigintIDs(t *testing.T) {
	pool := testutil.NewPool(t)
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(ctx) })

	const low = int64(5)
	ids := []int64{low, 1<<32 + low, 1<<40 + low, math.MaxInt64}
	require.NoError(t, repo.NewStore(tx).LockEmployees(ctx, ids))

	const q = `SELECT count(*) FROM pg_locks WHERE locktype = 'advisory' AND pid = pg_backend_pid()`
	var held int
	require.NoError(t, tx.QueryRow(ctx, q).Scan(&held))
	assert.Equal(t, len(ids), held)
}
