package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Appointment struct {
	Base

	TenantID uuid.UUID `gorm:"type:uuid;not null;index:ix_appt_tenant_start;index:ix_appt_prof_start;index:ix_appt_client_start" json:"tenant_id"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index:ix_appt_client_start" json:"client_id"`
	Client   *Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	ProfessionalID uuid.UUID     `gorm:"type:uuid;not null;index:ix_appt_prof_start" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional,omitempty"`

	ServiceID uuid.UUID          `gorm:"type:uuid;not null" json:"service_id"`
	Service   *ServiceDefinition `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	StartAt time.Time `gorm:"not null;index:ix_appt_tenant_start;index:ix_appt_prof_start;index:ix_appt_client_start" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Status string `gorm:"size:12;not null;default:'SCHEDULED'" json:"status"`

	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price"`
	PaidStatus    string          `gorm:"size:10;not null;default:'UNPAID'" json:"paid_status"`
	PaymentMethod *string         `gorm:"size:30" json:"payment_method"`
	Notes         *string         `gorm:"type:text" json:"notes"`

	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
