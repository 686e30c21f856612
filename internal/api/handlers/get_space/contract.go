package get_space

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type SpaceService interface {
	GetByID(ctx context.Context, id int64) (*domain.ParkingSpace, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
