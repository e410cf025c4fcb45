package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// FreeSlots walks window on a step grid and returns every start time whose
// [start, start+duration) fits the window and overlaps none of busy.
// The result is chronological and recomputes identically from the same input.
func FreeSlots(
	window interval.Interval,
	duration time.Duration,
	step time.Duration,
	busy []interval.Interval,
) ([]time.Time, error) {

	if step <= 0 || duration <= 0 {
		return nil, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}

	slots := []time.Time{}
	if duration > window.Duration() {
		return slots, nil
	}

	for cursor := window.Start; !cursor.Add(duration).After(window.End); cursor = cursor.Add(step) {
		candidate := interval.Interval{Start: cursor, End: cursor.Add(duration)}
		if candidate.OverlapsAny(busy) {
			continue
		}
		slots = append(slots, cursor)
	}

	return slots, nil
}
