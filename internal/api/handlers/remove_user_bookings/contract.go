package remove_user_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	RemoveBookingsFromDaysInRange(ctx context.Context, req *models.RemoveDaysRequest) (int64, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
