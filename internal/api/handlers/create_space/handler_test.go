package create_space

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	store.AddSpaces(2)
	store.PutUser(domain.User{ID: 1, Name: "Boss", Type: domain.UserTypeManager})
	store.PutUser(domain.User{ID: 2, Name: "Ann", Type: domain.UserTypeRegular})
	h := NewHandler(spaces.NewService(store.Spaces(), store.Users(), store.TxManager(), logger.NewNop()), logger.NewNop())

	serve := func(acting int64) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/spaces", nil)
		if acting != 0 {
			r = r.WithContext(middleware.WithUserID(r.Context(), acting))
		}
		w := httptest.NewRecorder()
		h.Handle(w, r)
		return w
	}

	w := serve(1)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.SpaceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
	assert.False(t, resp.IsDeleted)

	assert.Equal(t, http.StatusForbidden, serve(2).Code)
	assert.Equal(t, http.StatusNotFound, serve(9).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(0).Code)
}
