package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucappointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

type AgendaHandler struct {
	availability *ucappointment.GetAvailability
	day          *ucappointment.AgendaDay
	rng          *ucappointment.AgendaRange
	log          zerolog.Logger
}

func NewAgendaHandler(
	availability *ucappointment.GetAvailability,
	day *ucappointment.AgendaDay,
	rng *ucappointment.AgendaRange,
	log zerolog.Logger,
) *AgendaHandler {
	return &AgendaHandler{
		availability: availability,
		day:          day,
		rng:          rng,
		log:          log,
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, name+" must be an integer")
		return nil, false
	}
	return &v, true
}

// ======================================================
// AVAILABILITY
// GET /api/appointments/availability?date=&service_id=
// ======================================================

func (h *AgendaHandler) Availability(c *gin.Context) {
	profID, ok := queryUUID(c, "professional_id")
	if !ok {
		return
	}

	serviceID, err := uuid.Parse(c.Query("service_id"))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, "service_id is required")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, "date is required (YYYY-MM-DD)")
		return
	}

	step, ok := queryInt(c, "step_minutes")
	if !ok {
		return
	}
	duration, ok := queryInt(c, "duration_minutes")
	if !ok {
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), ucappointment.GetAvailabilityInput{
		Actor:           middleware.Actor(c),
		ProfessionalID:  profID,
		ServiceID:       serviceID,
		Day:             date,
		StepMinutes:     step,
		WorkStart:       c.Query("work_start"),
		WorkEnd:         c.Query("work_end"),
		DurationMinutes: duration,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// DAY
// GET /api/agenda/day?date=YYYY-MM-DD
// ======================================================

func (h *AgendaHandler) Day(c *gin.Context) {
	profID, ok := queryUUID(c, "professional_id")
	if !ok {
		return
	}
	serviceID, ok := queryUUID(c, "service_id")
	if !ok {
		return
	}
	step, ok := queryInt(c, "step_minutes")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, "date is required (YYYY-MM-DD)")
		return
	}

	out, err := h.day.Execute(c.Request.Context(), ucappointment.AgendaDayInput{
		Actor:          middleware.Actor(c),
		ProfessionalID: profID,
		Day:            date,
		ServiceID:      serviceID,
		StepMinutes:    step,
		WorkStart:      c.Query("work_start"),
		WorkEnd:        c.Query("work_end"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// RANGE
// GET /api/agenda/range?start=YYYY-MM-DD&end=YYYY-MM-DD
// OWNER/STAFF without professional_id get the whole tenant
// and a null professional_id in the response.
// ======================================================

func (h *AgendaHandler) Range(c *gin.Context) {
	profID, ok := queryUUID(c, "professional_id")
	if !ok {
		return
	}

	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, "start and end are required (YYYY-MM-DD)")
		return
	}

	includeCanceled := false
	if raw := c.Query("include_canceled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidParameters, "include_canceled must be a boolean")
			return
		}
		includeCanceled = v
	}

	out, err := h.rng.Execute(c.Request.Context(), ucappointment.AgendaRangeInput{
		Actor:           middleware.Actor(c),
		ProfessionalID:  profID,
		Start:           start,
		End:             end,
		IncludeCanceled: includeCanceled,
		Status:          c.Query("status"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
