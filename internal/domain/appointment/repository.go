package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// BusyQuery selects the non-canceled appointments of one professional whose
// interval overlaps Window.
type BusyQuery struct {
	TenantID       uuid.UUID
	ProfessionalID uuid.UUID
	Window         interval.Interval
	ExcludeID      *uuid.UUID
}

// PeriodQuery lists appointments starting inside [From, To).
type PeriodQuery struct {
	TenantID        uuid.UUID
	ProfessionalID  *uuid.UUID
	From            time.Time
	To              time.Time
	Status          *Status
	IncludeCanceled bool
}

// Repository is the persistence contract of the scheduling core. Every
// lookup is tenant-scoped and returns httperr.ErrRecordNotFound on a miss.
type Repository interface {
	tenancy.ProfessionalFinder

	// -------- Tenant --------
	GetTenant(
		ctx context.Context,
		tenantID uuid.UUID,
	) (*models.Tenant, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		tenantID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.ServiceDefinition, error)

	GetClient(
		ctx context.Context,
		tenantID uuid.UUID,
		clientID uuid.UUID,
	) (*models.Client, error)

	// -------- Appointment (lookup) --------
	// GetAppointment restricts the lookup to professionalID when it is set.
	GetAppointment(
		ctx context.Context,
		tenantID uuid.UUID,
		appointmentID uuid.UUID,
		professionalID *uuid.UUID,
	) (*models.Appointment, error)

	// GetAppointmentForUpdate reads and row-locks an appointment. Only
	// meaningful inside WithinProfessionalLock.
	GetAppointmentForUpdate(
		ctx context.Context,
		tenantID uuid.UUID,
		appointmentID uuid.UUID,
	) (*models.Appointment, error)

	// -------- Appointment (conflict / write) --------
	ListBusyIntervals(
		ctx context.Context,
		q BusyQuery,
	) ([]interval.Interval, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// WithinProfessionalLock runs fn in a transaction that holds an exclusive
	// lock on the professional, so check-then-write sequences of concurrent
	// callers for the same professional never interleave. fn must use the
	// Repository it receives.
	WithinProfessionalLock(
		ctx context.Context,
		tenantID uuid.UUID,
		professionalID uuid.UUID,
		fn func(tx Repository) error,
	) error

	// -------- Availability / agenda --------
	GetWorkingHours(
		ctx context.Context,
		tenantID uuid.UUID,
		professionalID uuid.UUID,
		weekday time.Weekday,
	) (*models.WorkingHours, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		q PeriodQuery,
	) ([]models.Appointment, error)
}
