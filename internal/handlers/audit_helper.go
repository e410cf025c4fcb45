package handlers

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
)

// writeAudit queues an audit row for a catalog or settings change made
// through a handler.
func writeAudit(
	d *audit.Dispatcher,
	actor tenancy.Actor,
	action string,
	entity string,
	entityID uuid.UUID,
	meta any,
) {
	actorID := actor.PrincipalID
	d.Dispatch(audit.Event{
		TenantID: actor.TenantID,
		ActorID:  &actorID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: meta,
	})
}
