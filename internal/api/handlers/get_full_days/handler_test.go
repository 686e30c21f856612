package get_full_days

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/clock"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestHandle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.AddSpaces(1)
	day := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	_, err := store.Bookings().Create(ctx, &domain.Booking{UserID: 1, SpaceID: 1, Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)})
	require.NoError(t, err)

	now := fixedClock{now: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)}
	avail := availability.NewService(store.Bookings(), store.Spaces(), now, logger.NewNop())
	h := NewHandler(avail, clock.NewResolver(now, time.UTC), logger.NewNop())

	t.Run("explicit month", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/spaces/full-days?month=2024-02-01", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"days":["2024-02-14"]}`, w.Body.String())
	})

	t.Run("current month", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/spaces/full-days", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"days":[]}`, w.Body.String())
	})

	t.Run("bad month", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/spaces/full-days?month=feb", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
