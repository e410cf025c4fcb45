package timezone

import (
	"fmt"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Zones resolves the governing time zone of a tenant. The fallback zone is
// configuration, not process state, so tests can inject their own.
type Zones struct {
	fallback *time.Location
}

func NewZones(defaultTZ string) (*Zones, error) {
	if defaultTZ == "" {
		defaultTZ = DefaultTimezone
	}
	loc, err := time.LoadLocation(defaultTZ)
	if err != nil {
		return nil, fmt.Errorf("load default timezone %q: %w", defaultTZ, err)
	}
	return &Zones{fallback: loc}, nil
}

// Fixed returns Zones whose fallback is loc.
func Fixed(loc *time.Location) *Zones {
	return &Zones{fallback: loc}
}

func (z *Zones) Default() *time.Location {
	return z.fallback
}

// Location returns the zone named tz, or the fallback when tz is empty or unknown.
func (z *Zones) Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return z.fallback
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
