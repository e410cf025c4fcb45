package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// WorkDay is the bookable part of one calendar day for a professional.
type WorkDay struct {
	Window interval.Interval
	Breaks []interval.Interval
	Closed bool
}

// DayFromWorkingHours expands a weekly working-hours row onto day in loc.
// An inactive or incomplete row yields a closed day. A lunch break becomes a
// busy interval.
func DayFromWorkingHours(day time.Time, wh *models.WorkingHours, loc *time.Location) (WorkDay, error) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return WorkDay{Closed: true}, nil
	}

	start, err := interval.ParseClock(wh.StartTime)
	if err != nil {
		return WorkDay{}, err
	}
	end, err := interval.ParseClock(wh.EndTime)
	if err != nil {
		return WorkDay{}, err
	}

	window, err := interval.Window(day, start, end, loc)
	if err != nil {
		return WorkDay{}, err
	}

	wd := WorkDay{Window: window}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		ls, err := interval.ParseClock(wh.LunchStart)
		if err != nil {
			return WorkDay{}, err
		}
		le, err := interval.ParseClock(wh.LunchEnd)
		if err != nil {
			return WorkDay{}, err
		}
		lunch, err := interval.Window(day, ls, le, loc)
		if err != nil {
			return WorkDay{}, err
		}
		wd.Breaks = append(wd.Breaks, lunch)
	}

	return wd, nil
}

// ValidateWorkingHours checks one grid row before it is stored.
func ValidateWorkingHours(wh *models.WorkingHours) error {
	if !wh.Active {
		return nil
	}
	_, err := DayFromWorkingHours(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC), wh, time.UTC)
	return err
}
