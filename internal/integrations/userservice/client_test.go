package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

func newUserServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/internal/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch mux.Vars(req)["id"] {
		case "1":
			_, _ = w.Write([]byte(`{"id":1,"name":"Alice","email":"alice@example.com","user_type":"Manager"}`))
		case "2":
			_, _ = w.Write([]byte(`{"id":2,"name":"Bob","email":"bob@example.com","user_type":"Robot"}`))
		case "3":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"code":500,"message":"db down"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetUser(t *testing.T) {
	srv := newUserServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	user, err := client.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.True(t, user.IsManager())
}

func TestClient_GetUser_Errors(t *testing.T) {
	srv := newUserServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.GetUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = client.GetUser(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetUser(context.Background(), 3)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "db down")
}

func TestClient_GetUser_ConcurrentCallersGetCopies(t *testing.T) {
	srv := newUserServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	const callers = 8
	users := make([]*domain.User, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user, err := client.GetUser(context.Background(), 1)
			assert.NoError(t, err)
			users[i] = user
		}(i)
	}
	wg.Wait()

	for _, user := range users {
		require.NotNil(t, user)
		assert.Equal(t, int64(1), user.ID)
	}
	users[0].Name = "changed"
	assert.Equal(t, "Alice", users[1].Name)
}

func TestClient_GetUser_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	_, err := client.GetUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
