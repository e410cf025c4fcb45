package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/interval"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func scheduled(t *testing.T) *models.Appointment {
	t.Helper()
	iv := span(t, 9, 0, 10, 0).UTC()
	return &models.Appointment{
		StartAt: iv.Start,
		EndAt:   iv.End,
		Status:  string(StatusScheduled),
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	ap := scheduled(t)
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	assert.True(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCanceled), ap.Status)
	require.NotNil(t, ap.CanceledAt)

	assert.False(t, Cancel(ap, now.Add(time.Hour)))
	assert.True(t, ap.CanceledAt.Equal(now), "second cancel must not touch canceled_at")
}

func TestReschedule_MovesOnlyScheduled(t *testing.T) {
	ap := scheduled(t)
	to := span(t, 14, 0, 15, 0)

	require.NoError(t, Reschedule(ap, to))
	assert.True(t, ap.StartAt.Equal(wall(14, 0)))
	assert.Equal(t, time.UTC, ap.StartAt.Location())

	ap.Status = string(StatusCanceled)
	assert.True(t, httperr.IsBusiness(Reschedule(ap, to), httperr.CodeAlreadyCanceled))

	for _, st := range []Status{StatusCompleted, StatusNoShow} {
		ap.Status = string(st)
		assert.True(t, httperr.IsBusiness(Reschedule(ap, to), httperr.CodeInvalidState))
	}
}

func TestComplete_AndNoShow(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	ap := scheduled(t)
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
	assert.True(t, httperr.IsBusiness(MarkNoShow(ap), httperr.CodeInvalidState))

	ap = scheduled(t)
	require.NoError(t, MarkNoShow(ap))
	assert.Equal(t, string(StatusNoShow), ap.Status)
	assert.Nil(t, ap.CompletedAt)

	ap = scheduled(t)
	Cancel(ap, now)
	assert.True(t, httperr.IsBusiness(Complete(ap, now), httperr.CodeInvalidState))
}

func TestIntervalOf(t *testing.T) {
	ap := scheduled(t)
	iv := IntervalOf(ap)
	assert.Equal(t, time.Hour, iv.Duration())
	assert.True(t, iv.Overlaps(interval.Interval{Start: wall(9, 30), End: wall(9, 45)}))
}

func TestParsePaidStatus(t *testing.T) {
	p, err := ParsePaidStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, PaidPaid, p)

	_, err = ParsePaidStatus("refunded")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidPaidStatus))
}

func TestBlocksTime(t *testing.T) {
	assert.True(t, BlocksTime(StatusScheduled))
	assert.True(t, BlocksTime(StatusCompleted))
	assert.True(t, BlocksTime(StatusNoShow))
	assert.False(t, BlocksTime(StatusCanceled))
}

func TestBlockingStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{string(StatusScheduled), string(StatusCompleted), string(StatusNoShow)},
		BlockingStatuses(),
	)
}
