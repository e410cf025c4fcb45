package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// notFoundAs turns a repository miss into a coded NotFound error.
func notFoundAs(err error, code string) error {
	if errors.Is(err, httperr.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

// tenantZone loads the tenant and its governing time zone.
func tenantZone(
	ctx context.Context,
	repo domain.Repository,
	zones *timezone.Zones,
	tenantID uuid.UUID,
) (*models.Tenant, *time.Location, error) {

	tenant, err := repo.GetTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, notFoundAs(err, httperr.CodeTenantNotFound)
	}
	return tenant, zones.Location(tenant.Timezone), nil
}

// findInScope looks an appointment up the way the actor is allowed to see
// it. Anything outside the actor's scope is reported as not found.
func findInScope(
	ctx context.Context,
	repo domain.Repository,
	actor tenancy.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	scope, err := tenancy.NewResolver(repo).Scope(ctx, actor)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return nil, httperr.ErrNotFound(httperr.CodeAppointmentNotFound)
		}
		return nil, err
	}

	ap, err := repo.GetAppointment(ctx, actor.TenantID, appointmentID, scope)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeAppointmentNotFound)
	}
	return ap, nil
}

func actorRef(actor tenancy.Actor) *uuid.UUID {
	id := actor.PrincipalID
	return &id
}
