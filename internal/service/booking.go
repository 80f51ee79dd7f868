package service

import (
	"context"
	"fmt"

	"github.com/pkordes/hr-ops/internal/domain"
	"github.com/pkordes/hr-ops/internal/repo"
)

// reserve locks the employees' bookings for the rest of tx and fails with a
// *domain.ConflictError when any of them already has an overlapping trip or
// vacation. It must run inside Store.WithTx, before the write.
func reserve(ctx context.Context, tx repo.Store, employeeIDs []int64, r domain.DateRange, opts domain.ConflictOptions) error {
	if err := tx.LockEmployees(ctx, employeeIDs); err != nil {
		return err
	}
	found, err := tx.Conflicts().FindConflictingEmployee(ctx, employeeIDs, r, opts)
	if err != nil {
		return err
	}
	if found != nil {
		return &domain.ConflictError{Employee: *found}
	}
	return nil
}

// participantSet de-duplicates ids and rejects an empty or non-positive set.
func participantSet(ids []int64) ([]int64, error) {
	set := domain.NormalizeIDs(ids)
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: participants must not be empty", domain.ErrValidation)
	}
	if set[0] <= 0 {
		return nil, fmt.Errorf("%w: participant ids must be positive", domain.ErrValidation)
	}
	return set, nil
}
