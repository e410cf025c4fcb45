package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestDayFromWorkingHours_LunchIsABreak(t *testing.T) {
	wh := &models.WorkingHours{
		StartTime:  "08:00",
		EndTime:    "12:00",
		LunchStart: "10:00",
		LunchEnd:   "10:30",
		Active:     true,
	}

	wd, err := DayFromWorkingHours(wall(0, 0), wh, brt)
	require.NoError(t, err)
	assert.False(t, wd.Closed)
	assert.True(t, wd.Window.Start.Equal(wall(8, 0)))
	assert.True(t, wd.Window.End.Equal(wall(12, 0)))
	require.Len(t, wd.Breaks, 1)
	assert.True(t, wd.Breaks[0].Start.Equal(wall(10, 0)))
}

func TestDayFromWorkingHours_Closed(t *testing.T) {
	wd, err := DayFromWorkingHours(wall(0, 0), nil, brt)
	require.NoError(t, err)
	assert.True(t, wd.Closed)

	wd, err = DayFromWorkingHours(wall(0, 0), &models.WorkingHours{StartTime: "08:00", EndTime: "18:00"}, brt)
	require.NoError(t, err)
	assert.True(t, wd.Closed, "inactive rows close the day")
}

func TestValidateWorkingHours(t *testing.T) {
	assert.NoError(t, ValidateWorkingHours(&models.WorkingHours{Active: false, StartTime: "nonsense"}))
	assert.NoError(t, ValidateWorkingHours(&models.WorkingHours{Active: true, StartTime: "08:00", EndTime: "18:00"}))
	assert.Error(t, ValidateWorkingHours(&models.WorkingHours{Active: true, StartTime: "18:00", EndTime: "08:00"}))
	assert.Error(t, ValidateWorkingHours(&models.WorkingHours{Active: true, StartTime: "8h", EndTime: "18:00"}))
}
