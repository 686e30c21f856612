package get_empty_space_count

import (
	"context"
	"time"
)

type AvailabilityService interface {
	EmptySpaceCountForDay(ctx context.Context, day time.Time) (int, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
