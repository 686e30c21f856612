package fill_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	FillDaysWithBookings(ctx context.Context, req *models.FillDaysRequest) ([]*domain.Booking, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
