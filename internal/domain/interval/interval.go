// Package interval models half-open time ranges [Start, End) on absolute,
// offset-aware instants.
package interval

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds [start, end). end must be strictly after start.
func New(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, httperr.ErrValidation(httperr.CodeInvalidInterval)
	}
	return Interval{Start: start, End: end}, nil
}

// FromDuration builds [start, start+d).
func FromDuration(start time.Time, d time.Duration) (Interval, error) {
	return New(start, start.Add(d))
}

// Overlaps reports whether the two ranges share an instant.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) UTC() Interval {
	return Interval{Start: i.Start.UTC(), End: i.End.UTC()}
}

func (i Interval) In(loc *time.Location) Interval {
	return Interval{Start: i.Start.In(loc), End: i.End.In(loc)}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}

// OverlapsAny reports whether i overlaps at least one of busy.
func (i Interval) OverlapsAny(busy []Interval) bool {
	for _, b := range busy {
		if i.Overlaps(b) {
			return true
		}
	}
	return false
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseInstant parses an RFC3339 timestamp, keeping its offset. Timestamps
// without an offset are interpreted as wall-clock time in loc.
func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, httperr.ErrValidation(httperr.CodeInvalidStartAt)
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, httperr.ErrValidation(httperr.CodeInvalidStartAt)
}

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hm))
	if err != nil {
		return Clock{}, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Before compares two wall-clock times within the same day.
func (c Clock) Before(other Clock) bool {
	return c.Hour*60+c.Minute < other.Hour*60+other.Minute
}

// OnDay combines the calendar date of day with the wall-clock c in loc.
func OnDay(day time.Time, c Clock, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// ParseDay parses YYYY-MM-DD as midnight in loc.
func ParseDay(raw string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}
	return d, nil
}

// Window builds the [work start, work end) interval of a day in loc.
func Window(day time.Time, start, end Clock, loc *time.Location) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, httperr.ErrValidation(httperr.CodeInvalidParameters)
	}
	return New(OnDay(day, start, loc), OnDay(day, end, loc))
}
