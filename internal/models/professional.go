package models

import (
	"time"

	"github.com/google/uuid"
)

// Professional is a bookable provider. It may exist before its principal is
// invited, so UserID is optional.
type Professional struct {
	Base

	TenantID uuid.UUID  `gorm:"type:uuid;not null;index:ix_prof_tenant_name" json:"tenant_id"`
	UserID   *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`

	DisplayName    string `gorm:"size:120;not null;index:ix_prof_tenant_name" json:"display_name"`
	RegistrationID string `gorm:"size:50" json:"registration_id"`
	Active         bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
