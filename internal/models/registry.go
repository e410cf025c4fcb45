package models

// All lists every model migrated by the service, parents first.
func All() []any {
	return []any{
		&Tenant{},
		&User{},
		&Membership{},
		&Professional{},
		&ServiceDefinition{},
		&Client{},
		&ClientProfessional{},
		&WorkingHours{},
		&Appointment{},
		&AuditLog{},
	}
}
