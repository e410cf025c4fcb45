package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// HasConflict reports whether any non-canceled appointment of the professional
// overlaps q.Window, ignoring q.ExcludeID.
func HasConflict(ctx context.Context, repo Repository, q BusyQuery) (bool, error) {
	busy, err := repo.ListBusyIntervals(ctx, q)
	if err != nil {
		return false, err
	}
	return len(busy) > 0, nil
}

// AssertNoConflict is HasConflict returning a scheduling_conflict error.
func AssertNoConflict(ctx context.Context, repo Repository, q BusyQuery) error {
	conflict, err := HasConflict(ctx, repo, q)
	if err != nil {
		return err
	}
	if conflict {
		return httperr.ErrConflict(httperr.CodeSchedulingConflict)
	}
	return nil
}
