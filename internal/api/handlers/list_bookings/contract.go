package list_bookings

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type BookingService interface {
	GetAll(ctx context.Context) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
