package bookings

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAll(ctx context.Context) ([]*domain.Booking, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
}

// SpaceRepository интерфейс репозитория парковочных мест
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpace, error)
}

// UserProvider источник пользователей (UserService или локальный справочник)
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// Availability расчет свободных мест
type Availability interface {
	IsSpaceFree(ctx context.Context, spaceID int64, interval domain.Interval, excludeBookingID *int64) (bool, error)
	AvailableSpaces(ctx context.Context, interval domain.Interval) ([]*domain.ParkingSpace, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет операций над бронированиями
type MetricsRecorder interface {
	ObserveBookingOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
