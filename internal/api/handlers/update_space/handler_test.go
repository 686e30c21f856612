package update_space

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type fakeService struct{}

func (fakeService) SetDeleted(_ context.Context, id int64, deleted bool, actingUserID int64) (*domain.ParkingSpace, error) {
	if actingUserID != 1 {
		return nil, spaces.ErrAccessDenied
	}
	if id != 4 {
		return nil, spaces.ErrSpaceNotFound
	}
	return &domain.ParkingSpace{ID: id, IsDeleted: deleted}, nil
}

func serve(id, body string, acting int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/spaces/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"spaceId": id})
	r = r.WithContext(middleware.WithUserID(r.Context(), acting))
	w := httptest.NewRecorder()
	NewHandler(fakeService{}, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	w := serve("4", `{"isDeleted":true}`, 1)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isDeleted":true`)

	assert.Equal(t, http.StatusBadRequest, serve("4", `{}`, 1).Code)
	assert.Equal(t, http.StatusForbidden, serve("4", `{"isDeleted":false}`, 2).Code)
	assert.Equal(t, http.StatusNotFound, serve("5", `{"isDeleted":false}`, 1).Code)
}
