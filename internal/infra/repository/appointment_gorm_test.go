package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type seed struct {
	db   *gorm.DB
	repo *AppointmentGormRepository

	tenant   models.Tenant
	other    models.Tenant
	user     models.User
	prof     models.Professional
	inactive models.Professional
	client   models.Client
	service  models.ServiceDefinition
}

func newSeed(t *testing.T) *seed {
	t.Helper()
	gdb := dbtest.New(t)

	s := &seed{db: gdb, repo: NewAppointmentGormRepository(gdb)}

	s.tenant = models.Tenant{Name: "Clinic", Type: models.TenantTypeClinic, Status: models.TenantStatusActive, Timezone: "UTC"}
	s.other = models.Tenant{Name: "Other", Type: models.TenantTypeSolo, Status: models.TenantStatusActive, Timezone: "UTC"}
	require.NoError(t, gdb.Create(&s.tenant).Error)
	require.NoError(t, gdb.Create(&s.other).Error)

	s.user = models.User{Name: "Dr. Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, gdb.Create(&s.user).Error)

	s.prof = models.Professional{TenantID: s.tenant.ID, UserID: &s.user.ID, DisplayName: "Dr. Ana", Active: true}
	s.inactive = models.Professional{TenantID: s.tenant.ID, DisplayName: "Dr. Old", Active: false}
	require.NoError(t, gdb.Create(&s.prof).Error)
	require.NoError(t, gdb.Create(&s.inactive).Error)

	s.client = models.Client{TenantID: s.tenant.ID, FullName: "Bruno", Active: true}
	require.NoError(t, gdb.Create(&s.client).Error)

	s.service = models.ServiceDefinition{
		TenantID:               s.tenant.ID,
		Code:                   "consult",
		Name:                   "Consultation",
		DefaultDurationMinutes: 60,
		DefaultPrice:           decimal.NewFromInt(200),
		Active:                 true,
	}
	require.NoError(t, gdb.Create(&s.service).Error)

	return s
}

func (s *seed) insert(t *testing.T, start time.Time, status domain.Status) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{
		TenantID:       s.tenant.ID,
		ClientID:       s.client.ID,
		ProfessionalID: s.prof.ID,
		ServiceID:      s.service.ID,
		StartAt:        start,
		EndAt:          start.Add(time.Hour),
		Status:         string(status),
		PaidStatus:     string(domain.PaidUnpaid),
		Price:          decimal.NewFromInt(200),
		CreatedByID:    s.user.ID,
	}
	require.NoError(t, s.repo.CreateAppointment(context.Background(), ap))
	return ap
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func window(t *testing.T, start, end time.Time) interval.Interval {
	t.Helper()
	iv, err := interval.New(start, end)
	require.NoError(t, err)
	return iv
}

func TestFindActiveProfessional(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()

	p, err := s.repo.FindActiveProfessional(ctx, s.tenant.ID, s.prof.ID)
	require.NoError(t, err)
	assert.Equal(t, s.prof.ID, p.ID)

	_, err = s.repo.FindActiveProfessional(ctx, s.tenant.ID, s.inactive.ID)
	assert.ErrorIs(t, err, httperr.ErrRecordNotFound)

	_, err = s.repo.FindActiveProfessional(ctx, s.other.ID, s.prof.ID)
	assert.ErrorIs(t, err, httperr.ErrRecordNotFound)

	byUser, err := s.repo.FindActiveProfessionalByPrincipal(ctx, s.tenant.ID, s.user.ID)
	require.NoError(t, err)
	assert.Equal(t, s.prof.ID, byUser.ID)
}

func TestListBusyIntervals_HalfOpenOverlap(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()

	nine := s.insert(t, at(9, 0), domain.StatusScheduled)
	s.insert(t, at(11, 0), domain.StatusCanceled)
	s.insert(t, at(13, 0), domain.StatusCompleted)

	q := domain.BusyQuery{TenantID: s.tenant.ID, ProfessionalID: s.prof.ID}

	q.Window = window(t, at(10, 0), at(11, 0))
	busy, err := s.repo.ListBusyIntervals(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, busy, "touching 09:00-10:00 and a canceled 11:00 do not count")

	q.Window = window(t, at(9, 30), at(14, 30))
	busy, err = s.repo.ListBusyIntervals(ctx, q)
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.True(t, busy[0].Start.Equal(at(9, 0)))
	assert.True(t, busy[1].Start.Equal(at(13, 0)))

	q.ExcludeID = &nine.ID
	busy, err = s.repo.ListBusyIntervals(ctx, q)
	require.NoError(t, err)
	assert.Len(t, busy, 1)

	q.ExcludeID = nil
	q.TenantID = s.other.ID
	busy, err = s.repo.ListBusyIntervals(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, busy)
}

func TestListBusyIntervals_NoShowStillBlocks(t *testing.T) {
	s := newSeed(t)
	s.insert(t, at(9, 0), domain.StatusNoShow)
	s.insert(t, at(10, 0), domain.StatusCanceled)

	busy, err := s.repo.ListBusyIntervals(context.Background(), domain.BusyQuery{
		TenantID:       s.tenant.ID,
		ProfessionalID: s.prof.ID,
		Window:         window(t, at(8, 0), at(12, 0)),
	})
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Start.Equal(at(9, 0)))
}

func TestListBusyIntervals_OffsetAwareWindow(t *testing.T) {
	s := newSeed(t)
	s.insert(t, at(12, 0), domain.StatusScheduled)

	brt := time.FixedZone("BRT", -3*3600)
	w := window(t,
		time.Date(2026, 3, 10, 9, 30, 0, 0, brt),
		time.Date(2026, 3, 10, 10, 0, 0, 0, brt),
	)

	busy, err := s.repo.ListBusyIntervals(context.Background(), domain.BusyQuery{
		TenantID:       s.tenant.ID,
		ProfessionalID: s.prof.ID,
		Window:         w,
	})
	require.NoError(t, err)
	assert.Empty(t, busy, "09:30-10:00 BRT ends at 13:00 UTC, after the 12:00 UTC booking starts")
}

func TestGetAppointment_Scope(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	ap := s.insert(t, at(9, 0), domain.StatusScheduled)

	got, err := s.repo.GetAppointment(ctx, s.tenant.ID, ap.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Client)
	assert.Equal(t, "Bruno", got.Client.FullName)
	require.NotNil(t, got.Service)
	assert.Equal(t, "consult", got.Service.Code)

	_, err = s.repo.GetAppointment(ctx, s.tenant.ID, ap.ID, &s.inactive.ID)
	assert.ErrorIs(t, err, httperr.ErrRecordNotFound)

	_, err = s.repo.GetAppointment(ctx, s.other.ID, ap.ID, nil)
	assert.ErrorIs(t, err, httperr.ErrRecordNotFound)
}

func TestWithinProfessionalLock_RollsBackOnError(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.repo.WithinProfessionalLock(ctx, s.tenant.ID, s.prof.ID, func(tx domain.Repository) error {
		ap := &models.Appointment{
			TenantID:       s.tenant.ID,
			ClientID:       s.client.ID,
			ProfessionalID: s.prof.ID,
			ServiceID:      s.service.ID,
			StartAt:        at(9, 0),
			EndAt:          at(10, 0),
			Status:         string(domain.StatusScheduled),
			PaidStatus:     string(domain.PaidUnpaid),
			CreatedByID:    s.user.ID,
		}
		require.NoError(t, tx.CreateAppointment(ctx, ap))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, s.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestWithinProfessionalLock_ForeignProfessional(t *testing.T) {
	s := newSeed(t)

	called := false
	err := s.repo.WithinProfessionalLock(context.Background(), s.other.ID, s.prof.ID, func(domain.Repository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, httperr.ErrRecordNotFound)
	assert.False(t, called)
}

func TestUpdateAppointment_PersistsTransition(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()
	ap := s.insert(t, at(9, 0), domain.StatusScheduled)

	err := s.repo.WithinProfessionalLock(ctx, s.tenant.ID, s.prof.ID, func(tx domain.Repository) error {
		cur, err := tx.GetAppointmentForUpdate(ctx, s.tenant.ID, ap.ID)
		if err != nil {
			return err
		}
		domain.Cancel(cur, at(8, 0))
		return tx.UpdateAppointment(ctx, cur)
	})
	require.NoError(t, err)

	got, err := s.repo.GetAppointment(ctx, s.tenant.ID, ap.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), got.Status)
	require.NotNil(t, got.CanceledAt)
}

func TestListAppointmentsForPeriod_Filters(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()

	s.insert(t, at(9, 0), domain.StatusScheduled)
	s.insert(t, at(11, 0), domain.StatusCanceled)
	s.insert(t, at(9, 0).AddDate(0, 0, 1), domain.StatusScheduled)

	q := domain.PeriodQuery{TenantID: s.tenant.ID, From: at(0, 0), To: at(0, 0).AddDate(0, 0, 1)}

	apps, err := s.repo.ListAppointmentsForPeriod(ctx, q)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	q.IncludeCanceled = true
	apps, err = s.repo.ListAppointmentsForPeriod(ctx, q)
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.True(t, apps[0].StartAt.Before(apps[1].StartAt))

	canceled := domain.StatusCanceled
	q.Status = &canceled
	apps, err = s.repo.ListAppointmentsForPeriod(ctx, q)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	q.Status = nil
	q.ProfessionalID = &s.inactive.ID
	apps, err = s.repo.ListAppointmentsForPeriod(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestGetWorkingHours(t *testing.T) {
	s := newSeed(t)
	ctx := context.Background()

	wh := models.WorkingHours{
		TenantID:       s.tenant.ID,
		ProfessionalID: s.prof.ID,
		Weekday:        int(time.Tuesday),
		StartTime:      "08:00",
		EndTime:        "12:00",
		Active:         true,
	}
	require.NoError(t, s.db.Create(&wh).Error)

	got, err := s.repo.GetWorkingHours(ctx, s.tenant.ID, s.prof.ID, time.Tuesday)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got.EndTime)

	_, err = s.repo.GetWorkingHours(ctx, s.tenant.ID, s.prof.ID, time.Sunday)
	assert.ErrorIs(t, err, httperr.ErrRecordNotFound)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), httperr.ErrRecordNotFound)

	for _, code := range []string{"40001", "40P01", "23P01"} {
		err := translateError(&pgconn.PgError{Code: code})
		assert.True(t, httperr.IsKind(err, httperr.KindConcurrency), code)
	}

	unique := &pgconn.PgError{Code: "23505"}
	assert.Same(t, unique, translateError(unique))
}
