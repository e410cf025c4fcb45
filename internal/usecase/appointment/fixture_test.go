package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type world struct {
	repo  *memoryRepo
	zones *timezone.Zones
	clock timezone.Clock
	retry Retry

	tenant      uuid.UUID
	otherTenant uuid.UUID

	providerUser uuid.UUID
	ownerUser    uuid.UUID
	staffUser    uuid.UUID

	providerProf uuid.UUID
	colleague    uuid.UUID
	foreignProf  uuid.UUID

	client        uuid.UUID
	foreignClient uuid.UUID

	consult        uuid.UUID // 60 min default
	openEnded      uuid.UUID // no default duration
	retired        uuid.UUID // inactive
	foreignService uuid.UUID
}

func newWorld(t *testing.T) *world {
	t.Helper()

	w := &world{
		repo:         newMemoryRepo(),
		zones:        timezone.Fixed(time.UTC),
		clock:        timezone.ClockFunc(func() time.Time { return fixedNow }),
		retry:        Retry{MaxAttempts: 3, Log: zerolog.Nop()},
		tenant:       uuid.New(),
		otherTenant:  uuid.New(),
		providerUser: uuid.New(),
		ownerUser:    uuid.New(),
		staffUser:    uuid.New(),
	}

	r := w.repo
	r.tenants[w.tenant] = models.Tenant{Base: models.Base{ID: w.tenant}, Name: "Clinic", Timezone: "UTC"}
	r.tenants[w.otherTenant] = models.Tenant{Base: models.Base{ID: w.otherTenant}, Name: "Other", Timezone: "UTC"}

	w.providerProf = w.addProfessional(w.tenant, &w.providerUser)
	w.colleague = w.addProfessional(w.tenant, nil)
	w.foreignProf = w.addProfessional(w.otherTenant, nil)

	w.client = w.addClient(w.tenant)
	w.foreignClient = w.addClient(w.otherTenant)

	w.consult = w.addService(w.tenant, 60, true)
	w.openEnded = w.addService(w.tenant, 0, true)
	w.retired = w.addService(w.tenant, 30, false)
	w.foreignService = w.addService(w.otherTenant, 60, true)

	return w
}

func (w *world) addProfessional(tenantID uuid.UUID, userID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	w.repo.professionals[id] = models.Professional{
		Base:        models.Base{ID: id},
		TenantID:    tenantID,
		UserID:      userID,
		DisplayName: "Dr. " + id.String()[:4],
		Active:      true,
	}
	return id
}

func (w *world) addClient(tenantID uuid.UUID) uuid.UUID {
	id := uuid.New()
	w.repo.clients[id] = models.Client{
		Base:     models.Base{ID: id},
		TenantID: tenantID,
		FullName: "Client " + id.String()[:4],
		Active:   true,
	}
	return id
}

func (w *world) addService(tenantID uuid.UUID, minutes int, active bool) uuid.UUID {
	id := uuid.New()
	w.repo.services[id] = models.ServiceDefinition{
		Base:                   models.Base{ID: id},
		TenantID:               tenantID,
		Code:                   "svc-" + id.String()[:4],
		Name:                   "Service",
		DefaultDurationMinutes: minutes,
		DefaultPrice:           decimal.NewFromInt(150),
		Active:                 active,
	}
	return id
}

func (w *world) owner() tenancy.Actor {
	return tenancy.Actor{TenantID: w.tenant, PrincipalID: w.ownerUser, Role: tenancy.RoleOwner}
}

func (w *world) staff() tenancy.Actor {
	return tenancy.Actor{TenantID: w.tenant, PrincipalID: w.staffUser, Role: tenancy.RoleStaff}
}

func (w *world) provider() tenancy.Actor {
	return tenancy.Actor{TenantID: w.tenant, PrincipalID: w.providerUser, Role: tenancy.RoleProvider}
}

func (w *world) create() *CreateAppointment {
	return NewCreateAppointment(w.repo, w.zones, w.retry, nil)
}

func (w *world) cancel() *CancelAppointment {
	return NewCancelAppointment(w.repo, w.clock, w.retry, nil)
}

func (w *world) reschedule() *RescheduleAppointment {
	return NewRescheduleAppointment(w.repo, w.zones, w.retry, nil)
}

func (w *world) availability() *GetAvailability {
	start, _ := interval.ParseClock("08:00")
	end, _ := interval.ParseClock("18:00")
	return NewGetAvailability(w.repo, w.zones, AvailabilityDefaults{
		Step:      15 * time.Minute,
		WorkStart: start,
		WorkEnd:   end,
	})
}

// book creates an appointment for the colleague as the owner.
func (w *world) book(t *testing.T, start string, serviceID uuid.UUID) *models.Appointment {
	t.Helper()
	ap, err := w.create().Execute(context.Background(), CreateAppointmentInput{
		Actor:          w.owner(),
		ClientID:       w.client,
		ServiceID:      serviceID,
		ProfessionalID: &w.colleague,
		StartAt:        start,
	})
	require.NoError(t, err)
	return ap
}

func utc(day, h, m int) time.Time {
	return time.Date(2026, 3, day, h, m, 0, 0, time.UTC)
}

func intp(n int) *int { return &n }
