package occupancy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type gauge struct{ value int }

func (g *gauge) SetEmptySpacesToday(count int) { g.value = count }

type failingCounter struct{}

func (failingCounter) EmptySpaceCountForDay(context.Context, time.Time) (int, error) {
	return 0, errors.New("store unavailable")
}

func TestJob_RunOnce(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	store.AddSpaces(3)
	_, err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserID: 1, SpaceID: 2, Start: now, End: now.Add(time.Hour),
	})
	require.NoError(t, err)

	clock := fixedClock{now: now}
	avail := availability.NewService(store.Bookings(), store.Spaces(), clock, logger.NewNop())
	g := &gauge{}

	count, err := NewJob(avail, g, clock, logger.NewNop()).RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, g.value)
}

func TestJob_RunOnce_KeepsGaugeOnError(t *testing.T) {
	g := &gauge{value: 5}

	_, err := NewJob(failingCounter{}, g, fixedClock{now: time.Now()}, logger.NewNop()).RunOnce(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 5, g.value)
}

func TestSchedule_RejectsInvalidSpec(t *testing.T) {
	_, err := Schedule("every now and then", NewJob(failingCounter{}, &gauge{}, fixedClock{}, logger.NewNop()))
	assert.Error(t, err)

	c, err := Schedule("@every 1h", NewJob(failingCounter{}, &gauge{}, fixedClock{}, logger.NewNop()))
	require.NoError(t, err)
	c.Stop()
}
