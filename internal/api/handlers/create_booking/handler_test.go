package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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
	got *models.AddBookingRequest
	err error
}

func (f *fakeService) AddBookingAs(_ context.Context, req *models.AddBookingRequest) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: 9, UserID: req.UserID, SpaceID: 2, Start: req.Interval.Start, End: req.Interval.End}, nil
}

func newRequest(body string, actingUserID int64) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if actingUserID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), actingUserID))
	}
	return r
}

func TestHandle_CreatesForActingUser(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, clock.NewResolver(nil, time.UTC), logger.NewNop())
	w := httptest.NewRecorder()

	h.Handle(w, newRequest(`{"start":"2024-01-10-08-00-00","end":"2024-01-10-18-00-00"}`, 5))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(5), svc.got.ActingUserID)
	assert.Equal(t, int64(5), svc.got.UserID)
	assert.Nil(t, svc.got.SpaceID)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-10-08-00-00", resp.Start)
	assert.Equal(t, "2024-01-10-18-00-00", resp.End)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		acting int64
		err    error
		status int
	}{
		{"no acting user", `{"start":"today","end":"tomorrow"}`, 0, nil, http.StatusUnauthorized},
		{"missing end", `{"start":"today"}`, 1, nil, http.StatusBadRequest},
		{"bad date", `{"start":"yesterday","end":"today"}`, 1, nil, http.StatusBadRequest},
		{"reversed interval", `{"start":"tomorrow","end":"today"}`, 1, nil, http.StatusBadRequest},
		{"no availability", `{"start":"today","end":"tomorrow"}`, 1, bookings.ErrNoAvailability, http.StatusConflict},
		{"forbidden", `{"userId":2,"start":"today","end":"tomorrow"}`, 1, bookings.ErrAccessDenied, http.StatusForbidden},
		{"unknown user", `{"start":"today","end":"tomorrow"}`, 1, bookings.ErrUserNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, clock.NewResolver(nil, time.UTC), logger.NewNop())
			w := httptest.NewRecorder()

			h.Handle(w, newRequest(tt.body, tt.acting))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
