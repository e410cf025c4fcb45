package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a patient/customer of the tenant, without login.
type Client struct {
	Base

	TenantID uuid.UUID `gorm:"type:uuid;not null;index:ix_client_tenant_name" json:"tenant_id"`

	FullName string `gorm:"size:150;not null;index:ix_client_tenant_name" json:"full_name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:30" json:"phone"`
	Active   bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientProfessional links a client to the professionals that follow them.
type ClientProfessional struct {
	Base

	TenantID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_client_prof_link" json:"tenant_id"`
	ClientID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_client_prof_link" json:"client_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_client_prof_link" json:"professional_id"`
	IsPrimary      bool      `gorm:"default:false" json:"is_primary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
