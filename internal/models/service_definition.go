package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceDefinition struct {
	Base

	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_service_tenant_code" json:"tenant_id"`
	Code     string    `gorm:"size:40;not null;uniqueIndex:uq_service_tenant_code" json:"code"`
	Name     string    `gorm:"size:120;not null" json:"name"`

	// DefaultDurationMinutes of 0 means the service has no configured duration.
	DefaultDurationMinutes int             `gorm:"not null;default:0" json:"default_duration_minutes"`
	DefaultPrice           decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"default_price"`
	Active                 bool            `gorm:"not null" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceDefinition) TableName() string {
	return "service_definitions"
}
