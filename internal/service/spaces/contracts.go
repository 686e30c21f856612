package spaces

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// SpaceRepository интерфейс репозитория парковочных мест
type SpaceRepository interface {
	Create(ctx context.Context) (*domain.ParkingSpace, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpace, error)
	GetAll(ctx context.Context) ([]*domain.ParkingSpace, error)
	GetAllActive(ctx context.Context) ([]*domain.ParkingSpace, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.ParkingSpace, error)
	SetDeleted(ctx context.Context, id int64, deleted bool) (*domain.ParkingSpace, error)
}

// UserProvider источник пользователей
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
