package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	retry Retry
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	retry Retry,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		clock: clock,
		retry: retry,
		audit: audit,
	}
}

// Execute cancels the appointment. Canceling a canceled appointment returns
// it unchanged.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor tenancy.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	return changeStatus(ctx, uc.repo, uc.retry, uc.audit, actor, appointmentID, "appointment.canceled",
		func(ap *models.Appointment) (bool, error) {
			return domain.Cancel(ap, uc.clock.Now().UTC()), nil
		},
	)
}
