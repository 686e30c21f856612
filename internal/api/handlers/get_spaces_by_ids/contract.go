package get_spaces_by_ids

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type SpaceService interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.ParkingSpace, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
