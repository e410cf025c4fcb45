package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// AvailabilityDefaults fills what a request leaves out.
type AvailabilityDefaults struct {
	Step      time.Duration
	WorkStart interval.Clock
	WorkEnd   interval.Clock
}

type GetAvailabilityInput struct {
	Actor          tenancy.Actor
	ProfessionalID *uuid.UUID
	ServiceID      uuid.UUID
	Day            string

	StepMinutes     *int
	WorkStart       string
	WorkEnd         string
	DurationMinutes *int
}

type GetAvailability struct {
	repo     domain.Repository
	zones    *timezone.Zones
	defaults AvailabilityDefaults
}

func NewGetAvailability(
	repo domain.Repository,
	zones *timezone.Zones,
	defaults AvailabilityDefaults,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		zones:    zones,
		defaults: defaults,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*dto.AvailabilityDTO, error) {

	tenantID := in.Actor.TenantID

	_, loc, err := tenantZone(ctx, uc.repo, uc.zones, tenantID)
	if err != nil {
		return nil, err
	}

	prof, err := tenancy.NewResolver(uc.repo).Resolve(ctx, in.Actor, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, tenantID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeServiceNotFound)
	}
	if !service.Active {
		return nil, httperr.ErrNotFound(httperr.CodeServiceNotFound)
	}

	// A query parameter out of range is a bad request, not a duration policy
	// failure, even when the service default would win.
	if in.DurationMinutes != nil && !domain.ValidMinutes(*in.DurationMinutes) {
		return nil, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}

	duration, err := domain.ResolveDuration(service, in.DurationMinutes)
	if err != nil {
		return nil, err
	}

	step := uc.defaults.Step
	if in.StepMinutes != nil {
		if !domain.ValidMinutes(*in.StepMinutes) {
			return nil, httperr.ErrValidation(httperr.CodeInvalidParameters)
		}
		step = time.Duration(*in.StepMinutes) * time.Minute
	}
	if step <= 0 {
		return nil, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}

	day, err := interval.ParseDay(in.Day, loc)
	if err != nil {
		return nil, err
	}

	workDay, err := uc.workDay(ctx, in, tenantID, prof.ID, day, loc)
	if err != nil {
		return nil, err
	}

	out := &dto.AvailabilityDTO{
		Date:            day.Format("2006-01-02"),
		ProfessionalID:  prof.ID,
		ServiceID:       service.ID,
		DurationMinutes: int(duration / time.Minute),
		StepMinutes:     int(step / time.Minute),
		Slots:           []time.Time{},
	}

	if workDay.Closed {
		return out, nil
	}

	out.WorkStart = workDay.Window.Start.In(loc).Format("15:04")
	out.WorkEnd = workDay.Window.End.In(loc).Format("15:04")

	busy, err := uc.repo.ListBusyIntervals(ctx, domain.BusyQuery{
		TenantID:       tenantID,
		ProfessionalID: prof.ID,
		Window:         workDay.Window,
	})
	if err != nil {
		return nil, err
	}
	busy = append(busy, workDay.Breaks...)

	slots, err := domain.FreeSlots(workDay.Window, duration, step, busy)
	if err != nil {
		return nil, err
	}

	for _, s := range slots {
		out.Slots = append(out.Slots, s.In(loc))
	}
	out.Count = len(out.Slots)

	return out, nil
}

// workDay picks the window: explicit request values, then the professional's
// grid for that weekday, then the configured default.
func (uc *GetAvailability) workDay(
	ctx context.Context,
	in GetAvailabilityInput,
	tenantID uuid.UUID,
	professionalID uuid.UUID,
	day time.Time,
	loc *time.Location,
) (domain.WorkDay, error) {

	if in.WorkStart != "" || in.WorkEnd != "" {
		start, end := uc.defaults.WorkStart, uc.defaults.WorkEnd

		var err error
		if in.WorkStart != "" {
			if start, err = interval.ParseClock(in.WorkStart); err != nil {
				return domain.WorkDay{}, err
			}
		}
		if in.WorkEnd != "" {
			if end, err = interval.ParseClock(in.WorkEnd); err != nil {
				return domain.WorkDay{}, err
			}
		}

		window, err := interval.Window(day, start, end, loc)
		if err != nil {
			return domain.WorkDay{}, err
		}
		return domain.WorkDay{Window: window}, nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, tenantID, professionalID, day.Weekday())
	switch {
	case err == nil:
		return domain.DayFromWorkingHours(day, wh, loc)
	case errors.Is(err, httperr.ErrRecordNotFound):
		window, err := interval.Window(day, uc.defaults.WorkStart, uc.defaults.WorkEnd, loc)
		if err != nil {
			return domain.WorkDay{}, err
		}
		return domain.WorkDay{Window: window}, nil
	default:
		return domain.WorkDay{}, err
	}
}
