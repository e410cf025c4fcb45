package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type MembershipGormRepository struct {
	db *gorm.DB
}

func NewMembershipGormRepository(db *gorm.DB) *MembershipGormRepository {
	return &MembershipGormRepository{db: db}
}

// FindActiveMembership returns the active membership of userID in tenantID
// with its tenant loaded.
func (r *MembershipGormRepository) FindActiveMembership(
	ctx context.Context,
	tenantID uuid.UUID,
	userID uuid.UUID,
) (*models.Membership, error) {

	var m models.Membership
	if err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("tenant_id = ? AND user_id = ? AND active = ?", tenantID, userID, true).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &m, nil
}

// ListForUser returns every active membership of userID with its tenant.
func (r *MembershipGormRepository) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]models.Membership, error) {

	var ms []models.Membership
	if err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	return ms, nil
}
