package httperr

const (
	CodeTenantNotFound                = "tenant_not_found"
	CodeClientNotFound                = "client_not_found"
	CodeServiceNotFound               = "service_not_found"
	CodeProfessionalNotFound          = "professional_not_found"
	CodeInvalidProfessionalReference  = "invalid_professional_reference"
	CodeProfessionalReferenceRequired = "professional_reference_required"
	CodeAppointmentNotFound           = "appointment_not_found"

	CodeDurationRequired  = "duration_required"
	CodeInvalidDuration   = "invalid_duration"
	CodeInvalidParameters = "invalid_parameters"
	CodeInvalidStartAt    = "invalid_start_at"
	CodeInvalidInterval   = "invalid_interval"
	CodeInvalidPaidStatus = "invalid_paid_status"
	CodeAlreadyCanceled   = "already_canceled"
	CodeInvalidState      = "invalid_state"
	CodeInvalidRole       = "invalid_role"

	CodeSchedulingConflict  = "scheduling_conflict"
	CodeConcurrencyConflict = "concurrency_conflict"

	CodeForbidden = "forbidden"
)
