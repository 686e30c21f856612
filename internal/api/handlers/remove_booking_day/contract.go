package remove_booking_day

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type BookingService interface {
	RemoveDayFromBooking(ctx context.Context, bookingID int64, day time.Time, actingUserID int64) ([]*domain.Booking, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
