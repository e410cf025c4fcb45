package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/tenancy"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const TenantHeader = "X-Tenant-ID"

// MembershipFinder returns the active membership of a user in a tenant, with
// the tenant loaded, or httperr.ErrRecordNotFound.
type MembershipFinder interface {
	FindActiveMembership(ctx context.Context, tenantID, userID uuid.UUID) (*models.Membership, error)
}

// TenantMiddleware resolves the tenant from X-Tenant-ID and the caller's
// role in it. Any failure is a 403 so tenant existence never leaks.
func TenantMiddleware(memberships MembershipFinder, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		tenantID, err := uuid.Parse(strings.TrimSpace(c.GetHeader(TenantHeader)))
		if err != nil {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "missing or invalid X-Tenant-ID")
			return
		}

		m, err := memberships.FindActiveMembership(c.Request.Context(), tenantID, userID)
		if err != nil {
			if !errors.Is(err, httperr.ErrRecordNotFound) {
				log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("membership lookup failed")
			}
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "no access to this tenant")
			return
		}

		role, err := tenancy.ParseRole(m.Role)
		if err != nil {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeInvalidRole, "membership role is not recognized")
			return
		}

		c.Set(ContextTenantID, tenantID)
		c.Set(ContextUserRole, role)
		if m.Tenant != nil {
			c.Set(ContextTenant, m.Tenant)
		}
		c.Next()
	}
}

// Actor returns the principal acting inside the request's tenant.
func Actor(c *gin.Context) tenancy.Actor {
	userID, _ := UserID(c)
	tenantID, _ := c.Get(ContextTenantID)
	role, _ := c.Get(ContextUserRole)

	a := tenancy.Actor{PrincipalID: userID}
	if id, ok := tenantID.(uuid.UUID); ok {
		a.TenantID = id
	}
	if r, ok := role.(tenancy.Role); ok {
		a.Role = r
	}
	return a
}

// Tenant returns the tenant loaded by TenantMiddleware, if any.
func Tenant(c *gin.Context) *models.Tenant {
	v, ok := c.Get(ContextTenant)
	if !ok {
		return nil
	}
	t, _ := v.(*models.Tenant)
	return t
}

// RequireManager lets only OWNER and STAFF through.
func RequireManager() gin.HandlerFunc {
	return requireRole(func(r tenancy.Role) bool { return r.CanManage() })
}

// RequireOwner lets only OWNER through.
func RequireOwner() gin.HandlerFunc {
	return requireRole(func(r tenancy.Role) bool { return r == tenancy.RoleOwner })
}

func requireRole(allowed func(tenancy.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !allowed(Actor(c).Role) {
			httperr.Abort(c, http.StatusForbidden, httperr.CodeForbidden, "role not allowed")
			return
		}
		c.Next()
	}
}
