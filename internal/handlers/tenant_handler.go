package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type TenantHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewTenantHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *TenantHandler {
	return &TenantHandler{db: db, audit: audit, log: log}
}

type UpdateTenantRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
}

func (h *TenantHandler) load(c *gin.Context) (*models.Tenant, bool) {
	var tenant models.Tenant
	err := h.db.WithContext(c.Request.Context()).
		First(&tenant, "id = ?", middleware.Actor(c).TenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, httperr.CodeTenantNotFound, "tenant not found")
		return nil, false
	}
	if err != nil {
		h.log.Error().Err(err).Msg("get tenant")
		httperr.Internal(c, "failed_to_get_tenant", "could not load tenant")
		return nil, false
	}
	return &tenant, true
}

func (h *TenantHandler) Get(c *gin.Context) {
	tenant, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, tenant)
}

func (h *TenantHandler) Update(c *gin.Context) {
	tenant, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, httperr.CodeInvalidParameters, "name cannot be empty")
			return
		}
		tenant.Name = name
	}

	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if !timezone.IsValid(tz) {
			httperr.BadRequest(c, "invalid_timezone", "timezone must be an IANA zone name")
			return
		}
		tenant.Timezone = tz
	}

	if err := h.db.WithContext(c.Request.Context()).Save(tenant).Error; err != nil {
		h.log.Error().Err(err).Msg("update tenant")
		httperr.Internal(c, "failed_to_update_tenant", "could not save tenant settings")
		return
	}

	writeAudit(h.audit, middleware.Actor(c), "tenant.updated", "tenant", tenant.ID, req)

	c.JSON(http.StatusOK, tenant)
}
