package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// statusChange applies a status transition to ap under the professional lock,
// re-reading the row so a concurrent reschedule is never overwritten.
// apply reports whether anything changed; unchanged rows are not written.
type statusChange func(ap *models.Appointment) (bool, error)

func changeStatus(
	ctx context.Context,
	repo domain.Repository,
	retry Retry,
	dispatcher *audit.Dispatcher,
	actor tenancy.Actor,
	appointmentID uuid.UUID,
	action string,
	apply statusChange,
) (*models.Appointment, error) {

	ap, err := findInScope(ctx, repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	changed := false
	err = retry.Do(ctx, action, func() error {
		return repo.WithinProfessionalLock(ctx, actor.TenantID, ap.ProfessionalID, func(tx domain.Repository) error {
			cur, err := tx.GetAppointmentForUpdate(ctx, actor.TenantID, ap.ID)
			if err != nil {
				return notFoundAs(err, httperr.CodeAppointmentNotFound)
			}

			if changed, err = apply(cur); err != nil || !changed {
				copyState(ap, cur)
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

	if changed {
		dispatcher.Dispatch(audit.Event{
			TenantID: actor.TenantID,
			ActorID:  actorRef(actor),
			Action:   action,
			Entity:   "appointment",
			EntityID: &ap.ID,
			Metadata: map[string]any{"status": ap.Status},
		})
	}

	return ap, nil
}

// copyState moves the persisted columns of src onto dst, keeping the
// associations dst was loaded with.
func copyState(dst, src *models.Appointment) {
	client, prof, service := dst.Client, dst.Professional, dst.Service
	*dst = *src
	dst.Client, dst.Professional, dst.Service = client, prof, service
}
