package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// MembershipLister lists the active memberships of a principal.
type MembershipLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Membership, error)
}

type MeHandler struct {
	db          *gorm.DB
	memberships MembershipLister
	log         zerolog.Logger
}

func NewMeHandler(db *gorm.DB, memberships MembershipLister, log zerolog.Logger) *MeHandler {
	return &MeHandler{db: db, memberships: memberships, log: log}
}

type membershipView struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	TenantType string    `json:"tenant_type"`
	Timezone   string    `json:"timezone"`
	Role       string    `json:"role"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "authentication required")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "user no longer exists")
		return
	}

	ms, err := h.memberships.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("list memberships")
		httperr.Internal(c, "failed_to_list_memberships", "could not load memberships")
		return
	}

	views := make([]membershipView, 0, len(ms))
	for _, m := range ms {
		v := membershipView{TenantID: m.TenantID, Role: m.Role}
		if m.Tenant != nil {
			v.TenantName = m.Tenant.Name
			v.TenantType = m.Tenant.Type
			v.Timezone = m.Tenant.Timezone
		}
		views = append(views, v)
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
		"memberships": views,
	})
}
