package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	zones *timezone.Zones
	log   zerolog.Logger
}

func NewAuditLogsHandler(db *gorm.DB, zones *timezone.Zones, log zerolog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, zones: zones, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	tenantID := middleware.Actor(c).TenantID
	loc := tenantLocation(c, h.zones)

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query, always tenant scoped
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("tenant_id = ?", tenantID)

	// --------------------------------------------------
	// Optional filters, dates in the tenant zone
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		from, err := time.ParseInLocation("2006-01-02", fromStr, loc)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidParameters, "from must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}

	if toStr != "" {
		to, err := time.ParseInLocation("2006-01-02", toStr, loc)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidParameters, "to must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		h.log.Error().Err(err).Msg("count audit logs")
		httperr.Internal(c, "audit_count_failed", "could not count audit logs")
		return
	}

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		h.log.Error().Err(err).Msg("list audit logs")
		httperr.Internal(c, "audit_list_failed", "could not list audit logs")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
