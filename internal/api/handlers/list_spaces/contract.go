package list_spaces

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type SpaceService interface {
	GetAll(ctx context.Context) ([]*domain.ParkingSpace, error)
	GetAllActive(ctx context.Context) ([]*domain.ParkingSpace, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
