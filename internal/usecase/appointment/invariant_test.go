package appointment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func assertNoOverlap(t *testing.T, w *world, professionalID uuid.UUID) {
	t.Helper()
	live := w.repo.live(w.tenant, professionalID)
	for i := range live {
		for j := i + 1; j < len(live); j++ {
			a, b := domain.IntervalOf(&live[i]), domain.IntervalOf(&live[j])
			require.False(t, a.Overlaps(b), "overlap between %s and %s", a, b)
		}
	}
}

// randomStart returns a quarter-hour start between 08:00 and 15:45.
func randomStart(rng *rand.Rand) string {
	minutes := rng.Intn(32) * 15
	return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC).
		Add(time.Duration(minutes) * time.Minute).
		Format(time.RFC3339)
}

// expectedOutcome fails the test unless err is nil or a business rejection.
func expectedOutcome(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	_, ok := httperr.KindOf(err)
	require.True(t, ok, "unexpected error: %v", err)
}

func TestInvariant_RandomSequences(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			w := newWorld(t)
			short := w.addService(w.tenant, 30, true)
			services := []uuid.UUID{w.consult, short}

			var ids []uuid.UUID
			for step := 0; step < 200; step++ {
				switch op := rng.Intn(10); {
				case op < 6 || len(ids) == 0:
					ap, err := w.create().Execute(context.Background(), CreateAppointmentInput{
						Actor:          w.owner(),
						ClientID:       w.client,
						ServiceID:      services[rng.Intn(len(services))],
						ProfessionalID: &w.colleague,
						StartAt:        randomStart(rng),
					})
					expectedOutcome(t, err)
					if err == nil {
						ids = append(ids, ap.ID)
					}
				case op < 9:
					_, err := w.reschedule().Execute(context.Background(), RescheduleAppointmentInput{
						Actor:         w.owner(),
						AppointmentID: ids[rng.Intn(len(ids))],
						StartAt:       randomStart(rng),
					})
					expectedOutcome(t, err)
				default:
					_, err := w.cancel().Execute(context.Background(), w.owner(), ids[rng.Intn(len(ids))])
					require.NoError(t, err)
				}

				assertNoOverlap(t, w, w.colleague)
			}
		})
	}
}

func TestInvariant_ConcurrentCreates(t *testing.T) {
	w := newWorld(t)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// Every worker aims at 09:00 or 09:30; only one of them may win
			// since both overlap with a 60 min booking at either time.
			at := "2026-03-10T09:00:00Z"
			if i%2 == 1 {
				at = "2026-03-10T09:30:00Z"
			}
			_, err := w.create().Execute(context.Background(), CreateAppointmentInput{
				Actor:          w.owner(),
				ClientID:       w.client,
				ServiceID:      w.consult,
				ProfessionalID: &w.colleague,
				StartAt:        at,
			})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.True(t, httperr.IsBusiness(err, httperr.CodeSchedulingConflict), "got %v", err)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, created)
	assertNoOverlap(t, w, w.colleague)
}

func TestInvariant_ConcurrentMixedOperations(t *testing.T) {
	w := newWorld(t)
	short := w.addService(w.tenant, 30, true)

	var seeded []uuid.UUID
	for _, at := range []string{"2026-03-10T08:00:00Z", "2026-03-10T10:00:00Z", "2026-03-10T12:00:00Z"} {
		seeded = append(seeded, w.book(t, at, short).ID)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(100 + g)))
			for i := 0; i < 40; i++ {
				var err error
				switch rng.Intn(3) {
				case 0:
					_, err = w.create().Execute(context.Background(), CreateAppointmentInput{
						Actor:          w.owner(),
						ClientID:       w.client,
						ServiceID:      short,
						ProfessionalID: &w.colleague,
						StartAt:        randomStart(rng),
					})
				case 1:
					_, err = w.reschedule().Execute(context.Background(), RescheduleAppointmentInput{
						Actor:         w.owner(),
						AppointmentID: seeded[rng.Intn(len(seeded))],
						StartAt:       randomStart(rng),
					})
				default:
					_, err = w.cancel().Execute(context.Background(), w.owner(), seeded[rng.Intn(len(seeded))])
				}
				if err != nil {
					_, ok := httperr.KindOf(err)
					assert.True(t, ok, "unexpected error: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	assertNoOverlap(t, w, w.colleague)
}
