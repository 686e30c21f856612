package get_bookings_by_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type BookingService interface {
	GetByDates(ctx context.Context, start, end time.Time) ([]*domain.Booking, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
