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

type CompleteAppointment struct {
	repo  domain.Repository
	clock timezone.Clock
	retry Retry
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	clock timezone.Clock,
	retry Retry,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		clock: clock,
		retry: retry,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor tenancy.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	return changeStatus(ctx, uc.repo, uc.retry, uc.audit, actor, appointmentID, "appointment.completed",
		func(ap *models.Appointment) (bool, error) {
			if err := domain.Complete(ap, uc.clock.Now().UTC()); err != nil {
				return false, err
			}
			return true, nil
		},
	)
}

type MarkNoShow struct {
	repo  domain.Repository
	retry Retry
	audit *audit.Dispatcher
}

func NewMarkNoShow(
	repo domain.Repository,
	retry Retry,
	audit *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		retry: retry,
		audit: audit,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	actor tenancy.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	return changeStatus(ctx, uc.repo, uc.retry, uc.audit, actor, appointmentID, "appointment.no_show",
		func(ap *models.Appointment) (bool, error) {
			if err := domain.MarkNoShow(ap); err != nil {
				return false, err
			}
			return true, nil
		},
	)
}
