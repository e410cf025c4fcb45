package dto

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityDTO struct {
	Date            string      `json:"date"`
	ProfessionalID  uuid.UUID   `json:"professional_id"`
	ServiceID       uuid.UUID   `json:"service_id"`
	DurationMinutes int         `json:"duration_minutes"`
	StepMinutes     int         `json:"step_minutes"`
	WorkStart       string      `json:"work_start"`
	WorkEnd         string      `json:"work_end"`
	Slots           []time.Time `json:"slots"`
	Count           int         `json:"count"`
}

type AgendaDayDTO struct {
	Date              string               `json:"date"`
	TenantID          uuid.UUID            `json:"tenant_id"`
	ProfessionalID    uuid.UUID            `json:"professional_id"`
	Appointments      []AppointmentListDTO `json:"appointments"`
	AppointmentsCount int                  `json:"appointments_count"`
	Slots             []time.Time          `json:"slots"`
	SlotsCount        int                  `json:"slots_count"`
}

type AgendaRangeDTO struct {
	Start           string               `json:"start"`
	End             string               `json:"end"`
	TenantID        uuid.UUID            `json:"tenant_id"`
	// ProfessionalID is null for a tenant-wide listing: an OWNER or STAFF
	// caller that did not pass professional_id.
	ProfessionalID  *uuid.UUID           `json:"professional_id"`
	IncludeCanceled bool                 `json:"include_canceled"`
	Value           []AppointmentListDTO `json:"value"`
	Count           int                  `json:"count"`
}
