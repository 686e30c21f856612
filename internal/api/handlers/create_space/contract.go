package create_space

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type SpaceService interface {
	Create(ctx context.Context, actingUserID int64) (*domain.ParkingSpace, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
