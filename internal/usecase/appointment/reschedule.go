package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// RescheduleAppointmentInput carries only the new start. The duration always
// comes from the appointment's service.
type RescheduleAppointmentInput struct {
	Actor         tenancy.Actor
	AppointmentID uuid.UUID
	StartAt       string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	zones *timezone.Zones
	retry Retry
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	zones *timezone.Zones,
	retry Retry,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		zones: zones,
		retry: retry,
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	tenantID := in.Actor.TenantID

	_, loc, err := tenantZone(ctx, uc.repo, uc.zones, tenantID)
	if err != nil {
		return nil, err
	}

	ap, err := findInScope(ctx, uc.repo, in.Actor, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	start, err := interval.ParseInstant(in.StartAt, loc)
	if err != nil {
		return nil, err
	}

	from := domain.IntervalOf(ap)

	err = uc.retry.Do(ctx, "appointment.reschedule", func() error {
		return uc.repo.WithinProfessionalLock(ctx, tenantID, ap.ProfessionalID, func(tx domain.Repository) error {
			cur, err := tx.GetAppointmentForUpdate(ctx, tenantID, ap.ID)
			if err != nil {
				return notFoundAs(err, httperr.CodeAppointmentNotFound)
			}

			if err := domain.CanReschedule(domain.Status(cur.Status)); err != nil {
				return err
			}

			service, err := tx.GetService(ctx, tenantID, cur.ServiceID)
			if err != nil {
				return notFoundAs(err, httperr.CodeServiceNotFound)
			}

			duration, err := domain.ResolveDuration(service, nil)
			if err != nil {
				return err
			}

			to, err := interval.FromDuration(start, duration)
			if err != nil {
				return err
			}

			if err := domain.AssertNoConflict(ctx, tx, domain.BusyQuery{
				TenantID:       tenantID,
				ProfessionalID: cur.ProfessionalID,
				Window:         to,
				ExcludeID:      &cur.ID,
			}); err != nil {
				return err
			}

			if err := domain.Reschedule(cur, to); err != nil {
				return err
			}
			if err := tx.UpdateAppointment(ctx, cur); err != nil {
				return err
			}

			copyState(ap, cur)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorRef(in.Actor),
		Action:   "appointment.rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from_start": from.Start,
			"to_start":   ap.StartAt,
			"to_end":     ap.EndAt,
		},
	})

	return ap, nil
}
