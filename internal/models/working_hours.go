package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkingHours is one weekday row of a professional's weekly grid.
type WorkingHours struct {
	Base

	TenantID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_working_hours_day" json:"tenant_id"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_working_hours_day" json:"professional_id"`

	Weekday int `gorm:"not null;uniqueIndex:uq_working_hours_day" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
