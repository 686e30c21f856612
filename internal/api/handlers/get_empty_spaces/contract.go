package get_empty_spaces

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type AvailabilityService interface {
	AvailableSpaces(ctx context.Context, interval domain.Interval) ([]*domain.ParkingSpace, error)
	AvailableSpacesForDay(ctx context.Context, day time.Time) ([]*domain.ParkingSpace, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
