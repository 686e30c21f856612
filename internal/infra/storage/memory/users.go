package memory

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
)

// UserStore локальный справочник пользователей вместо UserService
type UserStore struct {
	store *Store
}

// GetUser возвращает userservice.ErrUserNotFound для неизвестного ID, как и HTTP клиент
func (r *UserStore) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return &user, nil
}
