package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel moves ap to CANCELED. It reports false when ap was already canceled,
// in which case nothing changes.
func Cancel(ap *models.Appointment, now time.Time) bool {
	if Status(ap.Status) == StatusCanceled {
		return false
	}

	ap.Status = string(StatusCanceled)
	ap.CanceledAt = &now
	return true
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// Reschedule replaces the interval of ap in place.
func Reschedule(ap *models.Appointment, to interval.Interval) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	to = to.UTC()
	ap.StartAt = to.Start
	ap.EndAt = to.End
	return nil
}

// IntervalOf returns the stored interval of ap.
func IntervalOf(ap *models.Appointment) interval.Interval {
	return interval.Interval{Start: ap.StartAt, End: ap.EndAt}
}
