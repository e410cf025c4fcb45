package models

import (
	"time"

	"github.com/google/uuid"
)

type Membership struct {
	Base

	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_membership_tenant_user" json:"tenant_id"`
	Tenant   *Tenant   `json:"tenant,omitempty"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_membership_tenant_user" json:"user_id"`

	Role   string `gorm:"size:10;not null" json:"role"`
	Active bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
