package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTenant(
	ctx context.Context,
	tenantID uuid.UUID,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).
		Where("id = ?", tenantID).
		First(&tenant).Error; err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) FindActiveProfessional(
	ctx context.Context,
	tenantID uuid.UUID,
	professionalID uuid.UUID,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND active = ?", professionalID, tenantID, true).
		First(&prof).Error; err != nil {
		return nil, translateError(err)
	}
	return &prof, nil
}

func (r *AppointmentGormRepository) FindActiveProfessionalByPrincipal(
	ctx context.Context,
	tenantID uuid.UUID,
	principalID uuid.UUID,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ? AND active = ?", principalID, tenantID, true).
		First(&prof).Error; err != nil {
		return nil, translateError(err)
	}
	return &prof, nil
}

// --------------------------------------------------
// Service / Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	tenantID uuid.UUID,
	serviceID uuid.UUID,
) (*models.ServiceDefinition, error) {

	var svc models.ServiceDefinition
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&svc).Error; err != nil {
		return nil, translateError(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	tenantID uuid.UUID,
	clientID uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", clientID, tenantID).
		First(&client).Error; err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

// --------------------------------------------------
// Appointment (lookup)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	tenantID uuid.UUID,
	appointmentID uuid.UUID,
	professionalID *uuid.UUID,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID)

	if professionalID != nil {
		q = q.Where("professional_id = ?", *professionalID)
	}

	var ap models.Appointment
	if err := q.First(&ap).Error; err != nil {
		return nil, translateError(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	tenantID uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		return nil, translateError(err)
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (conflict / write)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBusyIntervals(
	ctx context.Context,
	q domain.BusyQuery,
) ([]interval.Interval, error) {

	w := q.Window.UTC()

	tx := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("start_at", "end_at").
		Where(
			"tenant_id = ? AND professional_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
			q.TenantID,
			q.ProfessionalID,
			domain.BlockingStatuses(),
			w.End,
			w.Start,
		)

	if q.ExcludeID != nil {
		tx = tx.Where("id <> ?", *q.ExcludeID)
	}

	var rows []models.Appointment
	if err := tx.Order("start_at ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	busy := make([]interval.Interval, 0, len(rows))
	for i := range rows {
		busy = append(busy, domain.IntervalOf(&rows[i]).UTC())
	}
	return busy, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	normalize(ap)
	return translateError(
		r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error,
	)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	normalize(ap)
	return translateError(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error,
	)
}

func (r *AppointmentGormRepository) WithinProfessionalLock(
	ctx context.Context,
	tenantID uuid.UUID,
	professionalID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prof models.Professional
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ? AND tenant_id = ?", professionalID, tenantID).
			First(&prof).Error; err != nil {
			return translateError(err)
		}

		return fn(&AppointmentGormRepository{db: tx})
	})

	return translateError(err)
}

// --------------------------------------------------
// Availability / agenda
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	tenantID uuid.UUID,
	professionalID uuid.UUID,
	weekday time.Weekday,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_id = ? AND professional_id = ? AND weekday = ?",
			tenantID, professionalID, int(weekday),
		).
		First(&wh).Error; err != nil {
		return nil, translateError(err)
	}
	return &wh, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	q domain.PeriodQuery,
) ([]models.Appointment, error) {

	tx := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where(
			"tenant_id = ? AND start_at >= ? AND start_at < ?",
			q.TenantID, q.From.UTC(), q.To.UTC(),
		)

	if q.ProfessionalID != nil {
		tx = tx.Where("professional_id = ?", *q.ProfessionalID)
	}
	if q.Status != nil {
		tx = tx.Where("status = ?", string(*q.Status))
	} else if !q.IncludeCanceled {
		tx = tx.Where("status <> ?", string(domain.StatusCanceled))
	}

	var apps []models.Appointment
	if err := tx.Order("start_at ASC").Find(&apps).Error; err != nil {
		return nil, translateError(err)
	}
	return apps, nil
}

// normalize stores instants in UTC so every driver compares them the same way.
func normalize(ap *models.Appointment) {
	ap.StartAt = ap.StartAt.UTC()
	ap.EndAt = ap.EndAt.UTC()
}
