package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

var messages = map[string]string{
	httperr.CodeTenantNotFound:                "tenant not found",
	httperr.CodeClientNotFound:                "client not found",
	httperr.CodeServiceNotFound:               "service not found",
	httperr.CodeProfessionalNotFound:          "no professional record for this user",
	httperr.CodeInvalidProfessionalReference:  "professional does not exist or is inactive in this tenant",
	httperr.CodeProfessionalReferenceRequired: "professional_id is required",
	httperr.CodeAppointmentNotFound:           "appointment not found",
	httperr.CodeDurationRequired:              "service has no default duration; send duration_minutes",
	httperr.CodeInvalidDuration:               "duration must be positive",
	httperr.CodeInvalidParameters:             "invalid parameters",
	httperr.CodeInvalidStartAt:                "start_at must be an ISO-8601 timestamp",
	httperr.CodeInvalidInterval:               "end must be after start",
	httperr.CodeInvalidPaidStatus:             "invalid paid_status",
	httperr.CodeAlreadyCanceled:               "appointment is canceled",
	httperr.CodeInvalidState:                  "appointment cannot change from its current status",
	httperr.CodeInvalidRole:                   "role not recognized",
	httperr.CodeSchedulingConflict:            "time slot is no longer available",
	httperr.CodeConcurrencyConflict:           "concurrent update, try again",
	httperr.CodeForbidden:                     "not allowed",
}

// respondError writes err as {"error_code","message"}. Errors without a
// business kind are logged and hidden behind a 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		msg, ok := messages[be.Code]
		if !ok {
			msg = be.Code
		}
		httperr.Write(c, httperr.StatusFor(be.Kind), be.Code, msg)
		return
	}

	log.Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("unhandled error")
	httperr.Internal(c, "internal_error", "internal server error")
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.HTTPError{
		Code:    "invalid_request",
		Message: err.Error(),
	})
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, name+" must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidParameters, name+" must be a uuid")
		return nil, false
	}
	return &id, true
}
