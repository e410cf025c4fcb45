package models

import "time"

const (
	TenantTypeSolo   = "SOLO"
	TenantTypeClinic = "CLINIC"

	TenantStatusPending   = "PENDING"
	TenantStatusActive    = "ACTIVE"
	TenantStatusSuspended = "SUSPENDED"
)

type Tenant struct {
	Base

	Name     string `gorm:"size:120;not null" json:"name"`
	Type     string `gorm:"size:10;default:'SOLO'" json:"type"`
	Status   string `gorm:"size:12;default:'PENDING'" json:"status"`
	Timezone string `gorm:"size:64" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
