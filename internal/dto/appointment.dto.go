package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID               uuid.UUID `json:"id"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	Status           string    `json:"status"`
	PaidStatus       string    `json:"paid_status"`
	ClientID         uuid.UUID `json:"client_id"`
	ClientName       string    `json:"client_name"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	ServiceID        uuid.UUID `json:"service_id"`
	ServiceName      string    `json:"service_name"`
}

type AppointmentDetailDTO struct {
	AppointmentListDTO

	Price         decimal.Decimal `json:"price"`
	PaymentMethod *string         `json:"payment_method"`
	Notes         *string         `json:"notes"`
	CreatedBy     uuid.UUID       `json:"created_by"`
	CanceledAt    *time.Time      `json:"canceled_at"`
	CompletedAt   *time.Time      `json:"completed_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewAppointmentList renders ap with its instants in loc. Missing
// associations leave the name fields empty.
func NewAppointmentList(ap *models.Appointment, loc *time.Location) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:             ap.ID,
		StartAt:        ap.StartAt.In(loc),
		EndAt:          ap.EndAt.In(loc),
		Status:         ap.Status,
		PaidStatus:     ap.PaidStatus,
		ClientID:       ap.ClientID,
		ProfessionalID: ap.ProfessionalID,
		ServiceID:      ap.ServiceID,
	}
	if ap.Client != nil {
		out.ClientName = ap.Client.FullName
	}
	if ap.Professional != nil {
		out.ProfessionalName = ap.Professional.DisplayName
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	return out
}

func NewAppointmentDetail(ap *models.Appointment, loc *time.Location) AppointmentDetailDTO {
	return AppointmentDetailDTO{
		AppointmentListDTO: NewAppointmentList(ap, loc),
		Price:              ap.Price,
		PaymentMethod:      ap.PaymentMethod,
		Notes:              ap.Notes,
		CreatedBy:          ap.CreatedByID,
		CanceledAt:         inLoc(ap.CanceledAt, loc),
		CompletedAt:        inLoc(ap.CompletedAt, loc),
		CreatedAt:          ap.CreatedAt,
		UpdatedAt:          ap.UpdatedAt,
	}
}

func inLoc(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}
