package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ClientHandler struct {
	db       *gorm.DB
	resolver *tenancy.Resolver
	log      zerolog.Logger
}

func NewClientHandler(db *gorm.DB, resolver *tenancy.Resolver, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{db: db, resolver: resolver, log: log}
}

// ======================================================
// LIST CLIENTS
// PROVIDERs only see the clients linked to them.
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	actor := middleware.Actor(c)

	scope, err := h.resolver.Scope(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("clients.tenant_id = ? AND clients.active = ?", actor.TenantID, true)

	if scope != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM client_professionals cp WHERE cp.client_id = clients.id AND cp.tenant_id = ? AND cp.professional_id = ?)",
			actor.TenantID, *scope,
		)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(clients.full_name) LIKE ? OR clients.phone LIKE ? OR LOWER(clients.email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("clients.full_name ASC").Find(&clients).Error; err != nil {
		h.log.Error().Err(err).Msg("list clients")
		httperr.Internal(c, "failed_to_list_clients", "could not list clients")
		return
	}

	httpresp.List(c, clients)
}
