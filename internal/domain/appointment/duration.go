package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// MaxDurationMinutes bounds every minute count taken from a request or a
// service: one day.
const MaxDurationMinutes = 24 * 60

// ResolveDuration applies the booking duration policy: the service default
// wins when it is positive, otherwise the explicit minutes are required.
func ResolveDuration(service *models.ServiceDefinition, explicitMinutes *int) (time.Duration, error) {
	if service != nil && service.DefaultDurationMinutes > 0 {
		if service.DefaultDurationMinutes > MaxDurationMinutes {
			return 0, httperr.ErrValidation(httperr.CodeInvalidDuration)
		}
		return minutes(service.DefaultDurationMinutes), nil
	}

	if explicitMinutes == nil {
		return 0, httperr.ErrValidation(httperr.CodeDurationRequired)
	}
	if !ValidMinutes(*explicitMinutes) {
		return 0, httperr.ErrValidation(httperr.CodeInvalidDuration)
	}
	return minutes(*explicitMinutes), nil
}

// ValidateExplicitDuration rejects an out of range override even when the
// service default would make it unused.
func ValidateExplicitDuration(explicitMinutes *int) error {
	if explicitMinutes != nil && !ValidMinutes(*explicitMinutes) {
		return httperr.ErrValidation(httperr.CodeInvalidDuration)
	}
	return nil
}

// ValidMinutes reports whether n lies in (0, MaxDurationMinutes].
func ValidMinutes(n int) bool {
	return n > 0 && n <= MaxDurationMinutes
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
