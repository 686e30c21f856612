package get_bookings_by_ids

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct{ got []int64 }

func (f *fakeService) GetByIDs(_ context.Context, ids []int64) ([]*domain.Booking, error) {
	f.got = ids
	out := make([]*domain.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Booking{ID: id})
	}
	return out, nil
}

func serve(svc BookingService, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/bookings/ids", strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, `{"ids":[3,1]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{3, 1}, svc.got)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestHandle_Rejects(t *testing.T) {
	ids := make([]string, maxIDs+1)
	for i := range ids {
		ids[i] = fmt.Sprint(i + 1)
	}

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"ids":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"ids":[0]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"ids":[`+strings.Join(ids, ",")+`]}`).Code)
}
