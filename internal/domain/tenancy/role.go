// Package tenancy decides who a request acts as inside a tenant.
package tenancy

import (
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Role is the membership role of a principal within one tenant.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleStaff    Role = "STAFF"
	RoleProvider Role = "PROVIDER"
)

func ParseRole(raw string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(raw))); r {
	case RoleOwner, RoleStaff, RoleProvider:
		return r, nil
	default:
		return "", httperr.ErrForbidden(httperr.CodeInvalidRole)
	}
}

// CanManage reports whether the role may administer tenant catalogs
// (services, working hours of other professionals).
func (r Role) CanManage() bool {
	switch r {
	case RoleOwner, RoleStaff:
		return true
	case RoleProvider:
		return false
	default:
		return false
	}
}

// Actor is the authenticated principal acting inside a tenant.
type Actor struct {
	TenantID    uuid.UUID
	PrincipalID uuid.UUID
	Role        Role
}
