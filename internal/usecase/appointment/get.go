package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type GetAppointment struct {
	repo  domain.Repository
	zones *timezone.Zones
}

func NewGetAppointment(repo domain.Repository, zones *timezone.Zones) *GetAppointment {
	return &GetAppointment{repo: repo, zones: zones}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor tenancy.Actor,
	appointmentID uuid.UUID,
) (*dto.AppointmentDetailDTO, error) {

	_, loc, err := tenantZone(ctx, uc.repo, uc.zones, actor.TenantID)
	if err != nil {
		return nil, err
	}

	ap, err := findInScope(ctx, uc.repo, actor, appointmentID)
	if err != nil {
		return nil, err
	}

	out := dto.NewAppointmentDetail(ap, loc)
	return &out, nil
}
