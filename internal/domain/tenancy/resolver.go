package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ProfessionalFinder looks up active professionals of a tenant. Both methods
// return httperr.ErrRecordNotFound when nothing matches.
type ProfessionalFinder interface {
	FindActiveProfessional(
		ctx context.Context,
		tenantID uuid.UUID,
		professionalID uuid.UUID,
	) (*models.Professional, error)

	FindActiveProfessionalByPrincipal(
		ctx context.Context,
		tenantID uuid.UUID,
		principalID uuid.UUID,
	) (*models.Professional, error)
}

type Resolver struct {
	finder ProfessionalFinder
}

func NewResolver(finder ProfessionalFinder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve picks the professional a booking applies to.
//
// A PROVIDER always acts as their own professional record and ref is ignored.
// OWNER and STAFF may name any active professional of the tenant, and fall
// back to their own record when ref is nil.
func (r *Resolver) Resolve(
	ctx context.Context,
	actor Actor,
	ref *uuid.UUID,
) (*models.Professional, error) {

	switch actor.Role {
	case RoleProvider:
		return r.own(ctx, actor, httperr.CodeProfessionalNotFound)

	case RoleOwner, RoleStaff:
		if ref == nil || *ref == uuid.Nil {
			return r.own(ctx, actor, httperr.CodeProfessionalReferenceRequired)
		}

		p, err := r.finder.FindActiveProfessional(ctx, actor.TenantID, *ref)
		if errors.Is(err, httperr.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound(httperr.CodeInvalidProfessionalReference)
		}
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, httperr.ErrForbidden(httperr.CodeInvalidRole)
	}
}

// Scope returns the professional an appointment lookup must be restricted to,
// or nil when the actor may see the whole tenant.
func (r *Resolver) Scope(ctx context.Context, actor Actor) (*uuid.UUID, error) {
	switch actor.Role {
	case RoleProvider:
		p, err := r.own(ctx, actor, httperr.CodeProfessionalNotFound)
		if err != nil {
			return nil, err
		}
		return &p.ID, nil

	case RoleOwner, RoleStaff:
		return nil, nil

	default:
		return nil, httperr.ErrForbidden(httperr.CodeInvalidRole)
	}
}

func (r *Resolver) own(ctx context.Context, actor Actor, missingCode string) (*models.Professional, error) {
	p, err := r.finder.FindActiveProfessionalByPrincipal(ctx, actor.TenantID, actor.PrincipalID)
	if errors.Is(err, httperr.ErrRecordNotFound) {
		if missingCode == httperr.CodeProfessionalReferenceRequired {
			return nil, httperr.ErrValidation(missingCode)
		}
		return nil, httperr.ErrNotFound(missingCode)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
