package get_space_free

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type AvailabilityService interface {
	IsSpaceFree(ctx context.Context, spaceID int64, interval domain.Interval, excludeBookingID *int64) (bool, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
