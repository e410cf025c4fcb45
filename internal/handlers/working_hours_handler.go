package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db       *gorm.DB
	resolver *tenancy.Resolver
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

func NewWorkingHoursHandler(
	db *gorm.DB,
	resolver *tenancy.Resolver,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, resolver: resolver, audit: audit, log: log}
}

type WorkingDayConfig struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

// professional resolves :id to a professional the actor may manage.
// PROVIDERs may only address their own record.
func (h *WorkingHoursHandler) professional(c *gin.Context) (uuid.UUID, bool) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return uuid.Nil, false
	}

	actor := middleware.Actor(c)
	p, err := h.resolver.Resolve(c.Request.Context(), actor, &id)
	if err != nil {
		respondError(c, h.log, err)
		return uuid.Nil, false
	}
	if p.ID != id {
		httperr.Forbidden(c, httperr.CodeForbidden, "providers can only manage their own working hours")
		return uuid.Nil, false
	}
	return p.ID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	profID, ok := h.professional(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("tenant_id = ? AND professional_id = ?", middleware.Actor(c).TenantID, profID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		h.log.Error().Err(err).Msg("get working hours")
		httperr.Internal(c, "failed_to_get_working_hours", "could not load working hours")
		return
	}

	httpresp.List(c, hours)
}

// Update replaces the professional's whole weekly grid.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	profID, ok := h.professional(c)
	if !ok {
		return
	}
	actor := middleware.Actor(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	seen := make(map[int]bool, len(req.Days))
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[*d.Weekday] {
			httperr.BadRequest(c, httperr.CodeInvalidParameters, "weekday repeated in request")
			return
		}
		seen[*d.Weekday] = true

		wh := models.WorkingHours{
			TenantID:       actor.TenantID,
			ProfessionalID: profID,
			Weekday:        *d.Weekday,
			Active:         d.Active,
			StartTime:      d.StartTime,
			EndTime:        d.EndTime,
			LunchStart:     d.LunchStart,
			LunchEnd:       d.LunchEnd,
		}
		if err := domain.ValidateWorkingHours(&wh); err != nil {
			respondError(c, h.log, err)
			return
		}
		toCreate = append(toCreate, wh)
	}
	sort.Slice(toCreate, func(i, j int) bool { return toCreate[i].Weekday < toCreate[j].Weekday })

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND professional_id = ?", actor.TenantID, profID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		h.log.Error().Err(err).Msg("save working hours")
		httperr.Internal(c, "failed_to_save_working_hours", "could not save working hours")
		return
	}

	writeAudit(h.audit, actor, "working_hours.updated", "professional", profID, map[string]any{
		"days": len(toCreate),
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": toCreate})
}
