package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

const (
	alice   int64 = 1
	bob     int64 = 2
	manager int64 = 3
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordedOp struct{ operation, result string }

type recordingMetrics struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (m *recordingMetrics) ObserveBookingOperation(operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, recordedOp{operation, result})
}

type fixture struct {
	svc     *Service
	store   *memory.Store
	metrics *recordingMetrics
}

func newFixture(t *testing.T, spaces int) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddSpaces(spaces)
	store.PutUser(domain.User{ID: alice, Name: "Alice", Type: domain.UserTypeRegular})
	store.PutUser(domain.User{ID: bob, Name: "Bob", Type: domain.UserTypeRegular})
	store.PutUser(domain.User{ID: manager, Name: "Mia", Type: domain.UserTypeManager})

	return newFixtureWithRepo(t, store, store.Bookings())
}

func newFixtureWithRepo(t *testing.T, store *memory.Store, repo BookingRepository) *fixture {
	t.Helper()
	log := logger.NewNop()
	avail := availability.NewService(repo, store.Spaces(), fixedClock{now: at(time.January, 1, 8, 0)}, log)
	metrics := &recordingMetrics{}
	svc := NewService(repo, store.Spaces(), store.Users(), avail, store.TxManager(), metrics, 3, log)
	return &fixture{svc: svc, store: store, metrics: metrics}
}

func at(month time.Month, day, hour, minute int) time.Time {
	return time.Date(2024, month, day, hour, minute, 0, 0, time.UTC)
}

func interval(start, end time.Time) domain.Interval {
	return domain.Interval{Start: start, End: end}
}

func (f *fixture) all(t *testing.T) []*domain.Booking {
	t.Helper()
	bookings, err := f.store.Bookings().GetAll(context.Background())
	require.NoError(t, err)
	return bookings
}

func (f *fixture) add(t *testing.T, userID int64, start, end time.Time, spaceID *int64) *domain.Booking {
	t.Helper()
	b, err := f.svc.AddBooking(context.Background(), userID, interval(start, end), spaceID)
	require.NoError(t, err)
	return b
}

func TestAddBooking_ThenBlocked(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	first, err := f.svc.AddBooking(ctx, alice, interval(at(time.January, 1, 0, 0), at(time.January, 1, 23, 59)), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.SpaceID)

	_, err = f.svc.AddBooking(ctx, bob, interval(at(time.January, 1, 10, 0), at(time.January, 1, 11, 0)), nil)
	assert.ErrorIs(t, err, ErrNoAvailability)
	assert.ErrorIs(t, err, domain.ErrNoAvailability)
	assert.Len(t, f.all(t), 1)
}

func TestAddBooking_Validation(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	_, err := f.svc.AddBooking(ctx, alice, interval(at(time.January, 2, 0, 0), at(time.January, 1, 0, 0)), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = f.svc.AddBooking(ctx, 404, interval(at(time.January, 1, 0, 0), at(time.January, 1, 1, 0)), nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.AddBooking(ctx, alice, interval(at(time.January, 1, 0, 0), at(time.January, 1, 1, 0)), ptr.Ptr(int64(77)))
	assert.ErrorIs(t, err, ErrSpaceNotFound)

	assert.Empty(t, f.all(t))
}

func TestAddBooking_PreferredSpace(t *testing.T) {
	f := newFixture(t, 3)
	day := interval(at(time.January, 1, 9, 0), at(time.January, 1, 18, 0))

	preferred := f.add(t, alice, day.Start, day.End, ptr.Ptr(int64(2)))
	assert.Equal(t, int64(2), preferred.SpaceID)

	fallback := f.add(t, bob, day.Start, day.End, ptr.Ptr(int64(2)))
	assert.Equal(t, int64(1), fallback.SpaceID, "taken preferred space falls back to the lowest free id")

	_, err := f.store.Spaces().SetDeleted(context.Background(), 3, true)
	require.NoError(t, err)
	_, err = f.svc.AddBooking(context.Background(), bob, day, ptr.Ptr(int64(3)))
	assert.ErrorIs(t, err, ErrNoAvailability, "deleted preferred space is never booked")
}

func TestAddBookingAs_OnlyManagerBooksForOthers(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()
	req := &models.AddBookingRequest{
		ActingUserID: bob,
		UserID:       alice,
		Interval:     interval(at(time.January, 1, 9, 0), at(time.January, 1, 10, 0)),
	}

	_, err := f.svc.AddBookingAs(ctx, req)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	req.ActingUserID = manager
	b, err := f.svc.AddBookingAs(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, alice, b.UserID)
}

func TestUpdateBooking_KeepsOwnSpace(t *testing.T) {
	f := newFixture(t, 2)
	b := f.add(t, alice, at(time.January, 1, 10, 0), at(time.January, 1, 11, 0), ptr.Ptr(int64(2)))

	updated, err := f.svc.UpdateBooking(context.Background(), &models.UpdateBookingRequest{
		BookingID:    b.ID,
		ActingUserID: alice,
		UserID:       alice,
		Interval:     interval(at(time.January, 1, 10, 30), at(time.January, 1, 12, 0)),
	})

	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ID)
	assert.Equal(t, int64(2), updated.SpaceID)
	assert.Equal(t, at(time.January, 1, 12, 0), updated.End)
	assert.Len(t, f.all(t), 1)
}

func TestUpdateBooking_MovesWhenSpaceTaken(t *testing.T) {
	f := newFixture(t, 2)
	mine := f.add(t, alice, at(time.January, 1, 8, 0), at(time.January, 1, 9, 0), ptr.Ptr(int64(1)))
	f.add(t, bob, at(time.January, 1, 12, 0), at(time.January, 1, 13, 0), ptr.Ptr(int64(1)))

	updated, err := f.svc.UpdateBooking(context.Background(), &models.UpdateBookingRequest{
		BookingID:    mine.ID,
		ActingUserID: alice,
		UserID:       alice,
		Interval:     interval(at(time.January, 1, 8, 0), at(time.January, 1, 12, 30)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.SpaceID)
}

func TestUpdateAndDelete_Unauthorized(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	b := f.add(t, alice, at(time.January, 1, 10, 0), at(time.January, 1, 11, 0), nil)
	before := f.all(t)

	_, err := f.svc.UpdateBooking(ctx, &models.UpdateBookingRequest{
		BookingID:    b.ID,
		ActingUserID: bob,
		UserID:       bob,
		Interval:     interval(at(time.January, 2, 10, 0), at(time.January, 2, 11, 0)),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.svc.DeleteBooking(ctx, b.ID, bob)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	assert.Equal(t, before, f.all(t))
}

func TestUpdateBooking_NotFound(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	b := f.add(t, alice, at(time.January, 1, 10, 0), at(time.January, 1, 11, 0), nil)

	_, err := f.svc.UpdateBooking(ctx, &models.UpdateBookingRequest{
		BookingID: 99, ActingUserID: alice, UserID: alice,
		Interval: interval(at(time.January, 1, 10, 0), at(time.January, 1, 11, 0)),
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.UpdateBooking(ctx, &models.UpdateBookingRequest{
		BookingID: b.ID, ActingUserID: alice, UserID: 404,
		Interval: interval(at(time.January, 1, 10, 0), at(time.January, 1, 11, 0)),
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	own := f.add(t, alice, at(time.January, 1, 10, 0), at(time.January, 1, 11, 0), nil)
	other := f.add(t, bob, at(time.January, 2, 10, 0), at(time.January, 2, 11, 0), nil)

	require.NoError(t, f.svc.DeleteBooking(ctx, own.ID, alice))
	require.NoError(t, f.svc.DeleteBooking(ctx, other.ID, manager))
	assert.Empty(t, f.all(t))

	assert.ErrorIs(t, f.svc.DeleteBooking(ctx, own.ID, alice), ErrBookingNotFound)
}

func TestRemoveDayFromBooking_Split(t *testing.T) {
	f := newFixture(t, 2)
	b := f.add(t, alice, at(time.January, 1, 0, 0), at(time.January, 5, 23, 59), ptr.Ptr(int64(2)))

	parts, err := f.svc.RemoveDayFromBooking(context.Background(), b.ID, at(time.January, 3, 0, 0), alice)
	require.NoError(t, err)
	require.Len(t, parts, 2)

	all := f.all(t)
	require.Len(t, all, 2)

	head, tail := all[0], all[1]
	assert.Equal(t, b.ID, head.ID)
	assert.Equal(t, at(time.January, 1, 0, 0), head.Start)
	assert.Equal(t, at(time.January, 2, 23, 59), head.End)

	assert.NotEqual(t, b.ID, tail.ID)
	assert.Equal(t, at(time.January, 4, 0, 0), tail.Start)
	assert.Equal(t, at(time.January, 5, 23, 59), tail.End)

	for _, part := range all {
		assert.Equal(t, alice, part.UserID)
		assert.Equal(t, int64(2), part.SpaceID)
	}
}

func TestRemoveDayFromBooking_KeepsSoftDeletedSpace(t *testing.T) {
	ctx := context.Background()

	t.Run("split stays on the deleted space", func(t *testing.T) {
		f := newFixture(t, 2)
		b := f.add(t, alice, at(time.January, 1, 0, 0), at(time.January, 5, 23, 59), ptr.Ptr(int64(1)))
		_, err := f.store.Spaces().SetDeleted(ctx, 1, true)
		require.NoError(t, err)

		parts, err := f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 3, 0, 0), alice)
		require.NoError(t, err)
		require.Len(t, parts, 2)

		all := f.all(t)
		require.Len(t, all, 2)
		for _, part := range all {
			assert.Equal(t, int64(1), part.SpaceID)
		}
		assert.Equal(t, at(time.January, 2, 23, 59), all[0].End)
		assert.Equal(t, at(time.January, 4, 0, 0), all[1].Start)
	})

	t.Run("shrink with no other space", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.add(t, alice, at(time.January, 1, 9, 0), at(time.January, 3, 18, 0), nil)
		_, err := f.store.Spaces().SetDeleted(ctx, 1, true)
		require.NoError(t, err)

		_, err = f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 3, 0, 0), alice)
		require.NoError(t, err)

		_, err = f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 1, 0, 0), alice)
		require.NoError(t, err)

		all := f.all(t)
		require.Len(t, all, 1)
		assert.Equal(t, int64(1), all[0].SpaceID)
		assert.Equal(t, at(time.January, 2, 0, 0), all[0].Start)
		assert.Equal(t, at(time.January, 2, 23, 59), all[0].End)
	})
}

func TestRemoveDayFromBooking_Edges(t *testing.T) {
	ctx := context.Background()

	t.Run("first day", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.add(t, alice, at(time.January, 1, 9, 0), at(time.January, 3, 18, 0), nil)

		_, err := f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 1, 0, 0), alice)
		require.NoError(t, err)

		all := f.all(t)
		require.Len(t, all, 1)
		assert.Equal(t, at(time.January, 2, 0, 0), all[0].Start)
		assert.Equal(t, at(time.January, 3, 18, 0), all[0].End)
	})

	t.Run("last day", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.add(t, alice, at(time.January, 1, 9, 0), at(time.January, 3, 18, 0), nil)

		_, err := f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 3, 12, 0), manager)
		require.NoError(t, err)

		all := f.all(t)
		require.Len(t, all, 1)
		assert.Equal(t, at(time.January, 1, 9, 0), all[0].Start)
		assert.Equal(t, at(time.January, 2, 23, 59), all[0].End)
	})

	t.Run("single day", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.add(t, alice, at(time.January, 1, 9, 0), at(time.January, 1, 18, 0), nil)

		parts, err := f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 1, 0, 0), alice)
		require.NoError(t, err)
		assert.Empty(t, parts)
		assert.Empty(t, f.all(t))
	})

	t.Run("outside", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.add(t, alice, at(time.January, 2, 9, 0), at(time.January, 3, 18, 0), nil)

		_, err := f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 1, 0, 0), alice)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)

		_, err = f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 4, 0, 0), alice)
		assert.ErrorIs(t, err, domain.ErrInvalidOperation)
		assert.Len(t, f.all(t), 1)
	})

	t.Run("unauthorized", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.add(t, alice, at(time.January, 1, 9, 0), at(time.January, 3, 18, 0), nil)

		_, err := f.svc.RemoveDayFromBooking(ctx, b.ID, at(time.January, 2, 0, 0), bob)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Len(t, f.all(t), 1)
	})
}

func TestRemoveDayFromBooking_SplitRollsBackOnFailure(t *testing.T) {
	store := memory.NewStore()
	store.AddSpaces(1)
	store.PutUser(domain.User{ID: alice, Type: domain.UserTypeRegular})
	repo := &failingCreateRepo{BookingStore: store.Bookings()}
	f := newFixtureWithRepo(t, store, repo)

	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserID: alice, SpaceID: 1, Start: at(time.January, 1, 0, 0), End: at(time.January, 5, 23, 59),
	})
	require.NoError(t, err)

	_, err = f.svc.RemoveDayFromBooking(context.Background(), b.ID, at(time.January, 3, 0, 0), alice)
	assert.ErrorIs(t, err, ErrConflict)

	all := f.all(t)
	require.Len(t, all, 1)
	assert.Equal(t, at(time.January, 5, 23, 59), all[0].End, "shrink is undone when the second half cannot be stored")
}

// failingCreateRepo отклоняет любую вставку, как проигравшая гонку транзакция
type failingCreateRepo struct {
	*memory.BookingStore
}

func (r *failingCreateRepo) Create(context.Context, *domain.Booking) (*domain.Booking, error) {
	return nil, bookingRepo.ErrOverlap
}

func TestAddBooking_StoreConflictIsReported(t *testing.T) {
	store := memory.NewStore()
	store.AddSpaces(1)
	store.PutUser(domain.User{ID: alice, Type: domain.UserTypeRegular})
	f := newFixtureWithRepo(t, store, &failingCreateRepo{BookingStore: store.Bookings()})

	_, err := f.svc.AddBooking(context.Background(), alice, interval(at(time.January, 1, 0, 0), at(time.January, 1, 1, 0)), nil)

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, f.metrics.ops, recordedOp{"add", "conflict"})
}

func TestAddBooking_ConcurrentRaceForLastSpace(t *testing.T) {
	f := newFixture(t, 1)
	window := interval(at(time.January, 1, 10, 0), at(time.January, 1, 11, 0))

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for i := 0; i < attempts; i++ {
		userID := alice
		if i%2 == 1 {
			userID = bob
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddBooking(context.Background(), userID, window, nil)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			failures = append(failures, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	require.Len(t, failures, attempts-1)
	for _, err := range failures {
		assert.True(t, isNoAvailabilityOrConflict(err), "unexpected error: %v", err)
	}
	assert.Len(t, f.all(t), 1)
}

func isNoAvailabilityOrConflict(err error) bool {
	return errors.Is(err, domain.ErrNoAvailability) || errors.Is(err, domain.ErrConflict)
}
