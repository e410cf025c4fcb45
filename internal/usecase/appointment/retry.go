package appointment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Retry re-runs a transactional decision unit aborted by the database.
// Business outcomes are never retried.
type Retry struct {
	MaxAttempts int
	Log         zerolog.Logger
}

func (r Retry) Do(ctx context.Context, op string, fn func() error) error {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !httperr.IsKind(err, httperr.KindConcurrency) {
			return err
		}

		if attempt >= attempts {
			r.Log.Warn().
				Str("op", op).
				Int("attempts", attempt).
				Msg("scheduling transaction kept aborting, giving up")
			return httperr.ErrConflict(httperr.CodeSchedulingConflict)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		r.Log.Debug().
			Str("op", op).
			Int("attempt", attempt).
			Msg("scheduling transaction aborted, retrying")
	}
}
