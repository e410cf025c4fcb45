package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// memoryRepo is an in-memory Repository. WithinProfessionalLock serializes
// callers per professional the way the row lock does in the database.
type memoryRepo struct {
	mu sync.Mutex

	tenants       map[uuid.UUID]models.Tenant
	professionals map[uuid.UUID]models.Professional
	services      map[uuid.UUID]models.ServiceDefinition
	clients       map[uuid.UUID]models.Client
	appointments  map[uuid.UUID]models.Appointment
	workingHours  []models.WorkingHours

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex

	// abortNext makes the next N transactions fail as the database would
	// on a serialization failure.
	abortNext int
	txCount   int
}

var _ domain.Repository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		tenants:       map[uuid.UUID]models.Tenant{},
		professionals: map[uuid.UUID]models.Professional{},
		services:      map[uuid.UUID]models.ServiceDefinition{},
		clients:       map[uuid.UUID]models.Client{},
		appointments:  map[uuid.UUID]models.Appointment{},
		locks:         map[uuid.UUID]*sync.Mutex{},
	}
}

func (r *memoryRepo) GetTenant(_ context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[tenantID]
	if !ok {
		return nil, httperr.ErrRecordNotFound
	}
	return &t, nil
}

func (r *memoryRepo) FindActiveProfessional(_ context.Context, tenantID, id uuid.UUID) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professionals[id]
	if !ok || p.TenantID != tenantID || !p.Active {
		return nil, httperr.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memoryRepo) FindActiveProfessionalByPrincipal(_ context.Context, tenantID, principalID uuid.UUID) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.professionals {
		if p.UserID != nil && *p.UserID == principalID && p.TenantID == tenantID && p.Active {
			return &p, nil
		}
	}
	return nil, httperr.ErrRecordNotFound
}

func (r *memoryRepo) GetService(_ context.Context, tenantID, id uuid.UUID) (*models.ServiceDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok || s.TenantID != tenantID {
		return nil, httperr.ErrRecordNotFound
	}
	return &s, nil
}

func (r *memoryRepo) GetClient(_ context.Context, tenantID, id uuid.UUID) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok || c.TenantID != tenantID {
		return nil, httperr.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memoryRepo) GetAppointment(_ context.Context, tenantID, id uuid.UUID, professionalID *uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok || ap.TenantID != tenantID {
		return nil, httperr.ErrRecordNotFound
	}
	if professionalID != nil && ap.ProfessionalID != *professionalID {
		return nil, httperr.ErrRecordNotFound
	}
	return &ap, nil
}

func (r *memoryRepo) GetAppointmentForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*models.Appointment, error) {
	return r.GetAppointment(ctx, tenantID, id, nil)
}

func (r *memoryRepo) ListBusyIntervals(_ context.Context, q domain.BusyQuery) ([]interval.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var busy []interval.Interval
	for _, ap := range r.appointments {
		if ap.TenantID != q.TenantID || ap.ProfessionalID != q.ProfessionalID {
			continue
		}
		if !domain.BlocksTime(domain.Status(ap.Status)) {
			continue
		}
		if q.ExcludeID != nil && ap.ID == *q.ExcludeID {
			continue
		}
		iv := domain.IntervalOf(&ap)
		if iv.Overlaps(q.Window) {
			busy = append(busy, iv)
		}
	}
	return busy, nil
}

func (r *memoryRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return httperr.ErrRecordNotFound
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryRepo) WithinProfessionalLock(
	ctx context.Context,
	tenantID uuid.UUID,
	professionalID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	r.locksMu.Lock()
	l, ok := r.locks[professionalID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[professionalID] = l
	}
	r.locksMu.Unlock()

	l.Lock()
	defer l.Unlock()

	r.mu.Lock()
	r.txCount++
	abort := r.abortNext > 0
	if abort {
		r.abortNext--
	}
	r.mu.Unlock()

	if abort {
		return httperr.ErrConcurrency(httperr.CodeConcurrencyConflict)
	}
	return fn(r)
}

func (r *memoryRepo) GetWorkingHours(_ context.Context, tenantID, professionalID uuid.UUID, weekday time.Weekday) (*models.WorkingHours, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wh := range r.workingHours {
		if wh.TenantID == tenantID && wh.ProfessionalID == professionalID && wh.Weekday == int(weekday) {
			return &wh, nil
		}
	}
	return nil, httperr.ErrRecordNotFound
}

func (r *memoryRepo) ListAppointmentsForPeriod(_ context.Context, q domain.PeriodQuery) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != q.TenantID || ap.StartAt.Before(q.From) || !ap.StartAt.Before(q.To) {
			continue
		}
		if q.ProfessionalID != nil && ap.ProfessionalID != *q.ProfessionalID {
			continue
		}
		if q.Status != nil && ap.Status != string(*q.Status) {
			continue
		}
		if q.Status == nil && !q.IncludeCanceled && ap.Status == string(domain.StatusCanceled) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

// live returns the non-canceled appointments of a professional.
func (r *memoryRepo) live(tenantID, professionalID uuid.UUID) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID == tenantID && ap.ProfessionalID == professionalID && ap.Status != string(domain.StatusCanceled) {
			out = append(out, ap)
		}
	}
	return out
}
