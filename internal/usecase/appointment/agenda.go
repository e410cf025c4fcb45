package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// DAY
// ======================================================

type AgendaDayInput struct {
	Actor          tenancy.Actor
	ProfessionalID *uuid.UUID
	Day            string

	// ServiceID, when set, adds the free slots of the day for that service.
	ServiceID   *uuid.UUID
	StepMinutes *int
	WorkStart   string
	WorkEnd     string
}

type AgendaDay struct {
	repo         domain.Repository
	zones        *timezone.Zones
	availability *GetAvailability
}

func NewAgendaDay(
	repo domain.Repository,
	zones *timezone.Zones,
	availability *GetAvailability,
) *AgendaDay {
	return &AgendaDay{
		repo:         repo,
		zones:        zones,
		availability: availability,
	}
}

func (uc *AgendaDay) Execute(
	ctx context.Context,
	in AgendaDayInput,
) (*dto.AgendaDayDTO, error) {

	tenantID := in.Actor.TenantID

	_, loc, err := tenantZone(ctx, uc.repo, uc.zones, tenantID)
	if err != nil {
		return nil, err
	}

	prof, err := tenancy.NewResolver(uc.repo).Resolve(ctx, in.Actor, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	day, err := interval.ParseDay(in.Day, loc)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointmentsForPeriod(ctx, domain.PeriodQuery{
		TenantID:        tenantID,
		ProfessionalID:  &prof.ID,
		From:            day,
		To:              day.AddDate(0, 0, 1),
		IncludeCanceled: true,
	})
	if err != nil {
		return nil, err
	}

	out := &dto.AgendaDayDTO{
		Date:           day.Format("2006-01-02"),
		TenantID:       tenantID,
		ProfessionalID: prof.ID,
		Appointments:   toList(apps, loc),
		Slots:          []time.Time{},
	}
	out.AppointmentsCount = len(out.Appointments)

	if in.ServiceID != nil {
		av, err := uc.availability.Execute(ctx, GetAvailabilityInput{
			Actor:          in.Actor,
			ProfessionalID: &prof.ID,
			ServiceID:      *in.ServiceID,
			Day:            in.Day,
			StepMinutes:    in.StepMinutes,
			WorkStart:      in.WorkStart,
			WorkEnd:        in.WorkEnd,
		})
		if err != nil {
			return nil, err
		}
		out.Slots = av.Slots
	}
	out.SlotsCount = len(out.Slots)

	return out, nil
}

// ======================================================
// RANGE
// ======================================================

// AgendaRangeInput spans the calendar days Start..End, both inclusive.
type AgendaRangeInput struct {
	Actor          tenancy.Actor
	ProfessionalID *uuid.UUID
	Start          string
	End            string

	IncludeCanceled bool
	Status          string
}

type AgendaRange struct {
	repo  domain.Repository
	zones *timezone.Zones
}

func NewAgendaRange(repo domain.Repository, zones *timezone.Zones) *AgendaRange {
	return &AgendaRange{repo: repo, zones: zones}
}

func (uc *AgendaRange) Execute(
	ctx context.Context,
	in AgendaRangeInput,
) (*dto.AgendaRangeDTO, error) {

	tenantID := in.Actor.TenantID

	_, loc, err := tenantZone(ctx, uc.repo, uc.zones, tenantID)
	if err != nil {
		return nil, err
	}

	start, err := interval.ParseDay(in.Start, loc)
	if err != nil {
		return nil, err
	}
	end, err := interval.ParseDay(in.End, loc)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}

	profID, err := uc.professionalFilter(ctx, in)
	if err != nil {
		return nil, err
	}

	q := domain.PeriodQuery{
		TenantID:        tenantID,
		ProfessionalID:  profID,
		From:            start,
		To:              end.AddDate(0, 0, 1),
		IncludeCanceled: in.IncludeCanceled,
	}
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		q.Status = &st
	}

	apps, err := uc.repo.ListAppointmentsForPeriod(ctx, q)
	if err != nil {
		return nil, err
	}

	out := &dto.AgendaRangeDTO{
		Start:           start.Format("2006-01-02"),
		End:             end.Format("2006-01-02"),
		TenantID:        tenantID,
		ProfessionalID:  profID,
		IncludeCanceled: in.IncludeCanceled,
		Value:           toList(apps, loc),
	}
	out.Count = len(out.Value)
	return out, nil
}

// professionalFilter pins PROVIDERs to their own professional. OWNER/STAFF
// see the whole tenant unless they name a professional; that case returns
// nil and the result carries no professional_id.
func (uc *AgendaRange) professionalFilter(
	ctx context.Context,
	in AgendaRangeInput,
) (*uuid.UUID, error) {

	resolver := tenancy.NewResolver(uc.repo)

	if in.Actor.Role == tenancy.RoleProvider || in.ProfessionalID != nil {
		prof, err := resolver.Resolve(ctx, in.Actor, in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		return &prof.ID, nil
	}

	return resolver.Scope(ctx, in.Actor)
}

func toList(apps []models.Appointment, loc *time.Location) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for i := range apps {
		out = append(out, dto.NewAppointmentList(&apps[i], loc))
	}
	return out
}
