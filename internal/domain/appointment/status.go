package appointment

import (
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
	StatusNoShow    Status = "NO_SHOW"
)

func ParseStatus(raw string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(raw))); st {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusNoShow:
		return st, nil
	default:
		return "", httperr.ErrValidation(httperr.CodeInvalidParameters)
	}
}

type PaidStatus string

const (
	PaidUnpaid  PaidStatus = "UNPAID"
	PaidPartial PaidStatus = "PARTIAL"
	PaidPaid    PaidStatus = "PAID"
)

func ParsePaidStatus(raw string) (PaidStatus, error) {
	switch p := PaidStatus(strings.ToUpper(strings.TrimSpace(raw))); p {
	case PaidUnpaid, PaidPartial, PaidPaid:
		return p, nil
	default:
		return "", httperr.ErrValidation(httperr.CodeInvalidPaidStatus)
	}
}

// ===============================
// Validations
// ===============================

// InitialStatus is the status every new appointment is persisted with.
func InitialStatus() Status {
	return StatusScheduled
}

// BlocksTime reports whether an appointment in this status occupies its interval.
func BlocksTime(s Status) bool {
	return s != StatusCanceled
}

// BlockingStatuses lists every status for which BlocksTime holds, for
// storage queries that filter busy time in SQL.
func BlockingStatuses() []string {
	out := make([]string, 0, 3)
	for _, st := range []Status{StatusScheduled, StatusCompleted, StatusCanceled, StatusNoShow} {
		if BlocksTime(st) {
			out = append(out, string(st))
		}
	}
	return out
}

// CanReschedule allows only SCHEDULED appointments to move.
func CanReschedule(current Status) error {
	switch current {
	case StatusScheduled:
		return nil
	case StatusCanceled:
		return httperr.ErrValidation(httperr.CodeAlreadyCanceled)
	default:
		return httperr.ErrValidation(httperr.CodeInvalidState)
	}
}

// CanComplete allows closing only SCHEDULED appointments, as COMPLETED or NO_SHOW.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrValidation(httperr.CodeInvalidState)
	}
	return nil
}
