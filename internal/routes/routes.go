package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// Deps carries the process singletons the routes are built from. Redis and
// Audit may be nil.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    zerolog.Logger
	Redis  *redis.Client
	Audit  *audit.Dispatcher
	Clock  timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config
	if d.Clock == nil {
		d.Clock = timezone.SystemClock{}
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Logger(d.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	zones, err := timezone.NewZones(cfg.DefaultTimezone)
	if err != nil {
		return err
	}

	workStart, err := interval.ParseClock(cfg.DefaultWorkStart)
	if err != nil {
		return fmt.Errorf("DEFAULT_WORK_START: %w", err)
	}
	workEnd, err := interval.ParseClock(cfg.DefaultWorkEnd)
	if err != nil {
		return fmt.Errorf("DEFAULT_WORK_END: %w", err)
	}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	membershipRepo := infraRepo.NewMembershipGormRepository(d.DB)
	resolver := tenancy.NewResolver(appointmentRepo)

	retry := ucAppointment.Retry{MaxAttempts: cfg.SchedulingMaxRetries, Log: d.Log}

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		zones,
		ucAppointment.AvailabilityDefaults{
			Step:      cfg.AvailabilityStep(),
			WorkStart: workStart,
			WorkEnd:   workEnd,
		},
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(appointmentRepo, zones, retry, d.Audit),
		ucAppointment.NewGetAppointment(appointmentRepo, zones),
		ucAppointment.NewCancelAppointment(appointmentRepo, d.Clock, retry, d.Audit),
		ucAppointment.NewRescheduleAppointment(appointmentRepo, zones, retry, d.Audit),
		ucAppointment.NewCompleteAppointment(appointmentRepo, d.Clock, retry, d.Audit),
		ucAppointment.NewMarkNoShow(appointmentRepo, retry, d.Audit),
		zones,
		d.Log,
	)

	agendaHandler := handlers.NewAgendaHandler(
		availabilityUC,
		ucAppointment.NewAgendaDay(appointmentRepo, zones, availabilityUC),
		ucAppointment.NewAgendaRange(appointmentRepo, zones),
		d.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, membershipRepo, d.Log)
	tenantHandler := handlers.NewTenantHandler(d.DB, d.Audit, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB, resolver, d.Log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB, resolver, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, zones, d.Log)

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if d.Redis != nil {
		limit = middleware.RateLimit(
			middleware.NewRedisCounter(d.Redis),
			cfg.RateLimitPerMinute,
			time.Minute,
			d.Log,
		)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(cfg))

		// tenant-agnostic
		authed.GET("/me", meHandler.GetMe)

		// ------------------------------
		// TENANT SCOPED
		// ------------------------------
		tenant := authed.Group("/")
		tenant.Use(middleware.TenantMiddleware(membershipRepo, d.Log))
		{
			tenant.GET("/tenant", tenantHandler.Get)
			tenant.PATCH("/tenant", middleware.RequireOwner(), tenantHandler.Update)

			tenant.GET("/services", serviceHandler.List)
			tenant.GET("/services/:id", serviceHandler.Get)
			tenant.POST("/services", middleware.RequireManager(), serviceHandler.Create)
			tenant.PATCH("/services/:id", middleware.RequireManager(), serviceHandler.Update)

			tenant.GET("/clients", clientHandler.List)

			tenant.GET("/professionals/:id/working-hours", workingHoursHandler.Get)
			tenant.PUT("/professionals/:id/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			tenant.GET("/appointments/availability", agendaHandler.Availability)
			tenant.POST("/appointments", limit, appointmentHandler.Create)
			tenant.GET("/appointments/:id", appointmentHandler.Get)
			tenant.PATCH("/appointments/:id/cancel", limit, appointmentHandler.Cancel)
			tenant.PATCH("/appointments/:id/reschedule", limit, appointmentHandler.Reschedule)
			tenant.PATCH("/appointments/:id/complete", limit, appointmentHandler.Complete)
			tenant.PATCH("/appointments/:id/no-show", limit, appointmentHandler.NoShow)

			tenant.GET("/agenda/day", agendaHandler.Day)
			tenant.GET("/agenda/range", agendaHandler.Range)

			tenant.GET("/audit-logs", middleware.RequireOwner(), auditLogsHandler.List)
		}
	}

	return nil
}
