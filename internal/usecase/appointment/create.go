package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor tenancy.Actor

	ClientID       uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID *uuid.UUID

	StartAt         string
	DurationMinutes *int

	Price         *decimal.Decimal
	PaidStatus    string
	PaymentMethod *string
	Notes         *string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	zones *timezone.Zones
	retry Retry
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	zones *timezone.Zones,
	retry Retry,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		zones: zones,
		retry: retry,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	tenantID := in.Actor.TenantID

	// --------------------------------------------------
	// Tenant zone
	// --------------------------------------------------
	_, loc, err := tenantZone(ctx, uc.repo, uc.zones, tenantID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Professional
	// --------------------------------------------------
	prof, err := tenancy.NewResolver(uc.repo).Resolve(ctx, in.Actor, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Client / service
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, tenantID, in.ClientID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeClientNotFound)
	}

	service, err := uc.repo.GetService(ctx, tenantID, in.ServiceID)
	if err != nil {
		return nil, notFoundAs(err, httperr.CodeServiceNotFound)
	}

	// --------------------------------------------------
	// Interval
	// --------------------------------------------------
	if err := domain.ValidateExplicitDuration(in.DurationMinutes); err != nil {
		return nil, err
	}
	duration, err := domain.ResolveDuration(service, in.DurationMinutes)
	if err != nil {
		return nil, err
	}

	start, err := interval.ParseInstant(in.StartAt, loc)
	if err != nil {
		return nil, err
	}
	slot, err := interval.FromDuration(start, duration)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Payment defaults
	// --------------------------------------------------
	paid := domain.PaidUnpaid
	if in.PaidStatus != "" {
		if paid, err = domain.ParsePaidStatus(in.PaidStatus); err != nil {
			return nil, err
		}
	}

	price := service.DefaultPrice
	if in.Price != nil {
		price = *in.Price
	}

	ap := &models.Appointment{
		TenantID:       tenantID,
		ClientID:       client.ID,
		ProfessionalID: prof.ID,
		ServiceID:      service.ID,
		StartAt:        slot.Start.UTC(),
		EndAt:          slot.End.UTC(),
		Status:         string(domain.InitialStatus()),
		Price:          price,
		PaidStatus:     string(paid),
		PaymentMethod:  in.PaymentMethod,
		Notes:          in.Notes,
		CreatedByID:    in.Actor.PrincipalID,
	}

	// --------------------------------------------------
	// Conflict check + insert, one decision unit
	// --------------------------------------------------
	err = uc.retry.Do(ctx, "appointment.create", func() error {
		return uc.repo.WithinProfessionalLock(ctx, tenantID, prof.ID, func(tx domain.Repository) error {
			if err := domain.AssertNoConflict(ctx, tx, domain.BusyQuery{
				TenantID:       tenantID,
				ProfessionalID: prof.ID,
				Window:         slot,
			}); err != nil {
				return err
			}
			return tx.CreateAppointment(ctx, ap)
		})
	})
	if err != nil {
		return nil, err
	}

	ap.Client = client
	ap.Professional = prof
	ap.Service = service

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		ActorID:  actorRef(in.Actor),
		Action:   "appointment.created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"professional_id": prof.ID,
			"start_at":        ap.StartAt,
			"end_at":          ap.EndAt,
		},
	})

	return ap, nil
}
