package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucappointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucappointment.CreateAppointment
	get        *ucappointment.GetAppointment
	cancel     *ucappointment.CancelAppointment
	reschedule *ucappointment.RescheduleAppointment
	complete   *ucappointment.CompleteAppointment
	noShow     *ucappointment.MarkNoShow

	zones *timezone.Zones
	log   zerolog.Logger
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	get *ucappointment.GetAppointment,
	cancel *ucappointment.CancelAppointment,
	reschedule *ucappointment.RescheduleAppointment,
	complete *ucappointment.CompleteAppointment,
	noShow *ucappointment.MarkNoShow,
	zones *timezone.Zones,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		get:        get,
		cancel:     cancel,
		reschedule: reschedule,
		complete:   complete,
		noShow:     noShow,
		zones:      zones,
		log:        log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       uuid.UUID  `json:"client_id" binding:"required"`
	ServiceID      uuid.UUID  `json:"service_id" binding:"required"`
	ProfessionalID *uuid.UUID `json:"professional_id"`

	StartAt         string `json:"start_at" binding:"required"`
	DurationMinutes *int   `json:"duration_minutes"`

	Price         *decimal.Decimal `json:"price"`
	PaidStatus    string           `json:"paid_status"`
	PaymentMethod *string          `json:"payment_method"`
	Notes         *string          `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	StartAt string `json:"start_at" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) render(c *gin.Context, status int, ap *models.Appointment) {
	c.JSON(status, dto.NewAppointmentDetail(ap, tenantLocation(c, h.zones)))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		Actor:           middleware.Actor(c),
		ClientID:        req.ClientID,
		ServiceID:       req.ServiceID,
		ProfessionalID:  req.ProfessionalID,
		StartAt:         req.StartAt,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		PaidStatus:      req.PaidStatus,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.render(c, http.StatusCreated, ap)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.render(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.render(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.render(c, http.StatusOK, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucappointment.RescheduleAppointmentInput{
		Actor:         middleware.Actor(c),
		AppointmentID: id,
		StartAt:       req.StartAt,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.render(c, http.StatusOK, ap)
}
