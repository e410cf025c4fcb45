package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit, log: log}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Code                   string           `json:"code" binding:"required"`
	Name                   string           `json:"name" binding:"required"`
	DefaultDurationMinutes int              `json:"default_duration_minutes" binding:"min=0,max=1440"`
	DefaultPrice           *decimal.Decimal `json:"default_price"`
}

type UpdateServiceRequest struct {
	Name                   *string          `json:"name,omitempty"`
	DefaultDurationMinutes *int             `json:"default_duration_minutes,omitempty"`
	DefaultPrice           *decimal.Decimal `json:"default_price,omitempty"`
	Active                 *bool            `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	tenantID := middleware.Actor(c).TenantID

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("tenant_id = ?", tenantID)

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR code LIKE ?", like, like)
	}

	var services []models.ServiceDefinition
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		h.log.Error().Err(err).Msg("list services")
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, service)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	tenantID := middleware.Actor(c).TenantID

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.Code))
	if code == "" {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, "code is required")
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.ServiceDefinition{}).
		Where("tenant_id = ? AND code = ?", tenantID, code).
		Count(&count).Error; err != nil {
		h.log.Error().Err(err).Msg("count services")
		httperr.Internal(c, "failed_to_create_service", "could not create service")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "service_code_exists", "a service with this code already exists")
		return
	}

	service := models.ServiceDefinition{
		TenantID:               tenantID,
		Code:                   code,
		Name:                   strings.TrimSpace(req.Name),
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		Active:                 true,
	}
	if req.DefaultPrice != nil {
		service.DefaultPrice = *req.DefaultPrice
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		h.log.Error().Err(err).Msg("create service")
		httperr.Internal(c, "failed_to_create_service", "could not create service")
		return
	}

	writeAudit(h.audit, middleware.Actor(c), "service.created", "service", service.ID, map[string]any{
		"code": service.Code,
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.DefaultDurationMinutes != nil {
		if *req.DefaultDurationMinutes < 0 || *req.DefaultDurationMinutes > 24*60 {
			httperr.BadRequest(c, httperr.CodeInvalidDuration, "default_duration_minutes must be between 0 and 1440")
			return
		}
		service.DefaultDurationMinutes = *req.DefaultDurationMinutes
	}
	if req.DefaultPrice != nil {
		service.DefaultPrice = *req.DefaultPrice
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		h.log.Error().Err(err).Msg("update service")
		httperr.Internal(c, "failed_to_update_service", "could not update service")
		return
	}

	writeAudit(h.audit, middleware.Actor(c), "service.updated", "service", service.ID, req)

	httpresp.OK(c, service)
}

func (h *ServiceHandler) load(c *gin.Context) (*models.ServiceDefinition, bool) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return nil, false
	}

	var service models.ServiceDefinition
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND tenant_id = ?", id, middleware.Actor(c).TenantID).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, httperr.CodeServiceNotFound, "service not found")
		return nil, false
	}
	if err != nil {
		h.log.Error().Err(err).Msg("get service")
		httperr.Internal(c, "failed_to_get_service", "could not load service")
		return nil, false
	}
	return &service, true
}
