package update_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/clock"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct {
	got *models.UpdateBookingRequest
	err error
}

func (f *fakeService) UpdateBooking(_ context.Context, req *models.UpdateBookingRequest) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: req.BookingID, UserID: req.UserID, SpaceID: 1, Start: req.Interval.Start, End: req.Interval.End}, nil
}

func serve(h *Handler, bookingID, body string, acting int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/"+bookingID, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"bookingId": bookingID})
	if acting != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), acting))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_PassesRequestThrough(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, clock.NewResolver(nil, time.UTC), logger.NewNop())

	w := serve(h, "3", `{"userId":4,"start":"2024-01-10","end":"2024-01-11","spaceId":2}`, 4)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.got.BookingID)
	assert.Equal(t, int64(4), svc.got.ActingUserID)
	require.NotNil(t, svc.got.SpaceID)
	assert.Equal(t, int64(2), *svc.got.SpaceID)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), svc.got.Interval.Start)
}

func TestHandle_Errors(t *testing.T) {
	body := `{"userId":4,"start":"2024-01-10","end":"2024-01-11"}`
	tests := []struct {
		name      string
		bookingID string
		body      string
		err       error
		status    int
	}{
		{"bad id", "x", body, nil, http.StatusBadRequest},
		{"missing user", "3", `{"start":"2024-01-10","end":"2024-01-11"}`, nil, http.StatusBadRequest},
		{"not found", "3", body, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"conflict", "3", body, bookings.ErrConflict, http.StatusConflict},
		{"invalid interval", "3", body, domain.ErrInvalidInterval, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, clock.NewResolver(nil, time.UTC), logger.NewNop())
			assert.Equal(t, tt.status, serve(h, tt.bookingID, tt.body, 4).Code)
		})
	}
}
