package get_full_days

import (
	"context"
	"time"
)

type AvailabilityService interface {
	FullDaysOfMonth(ctx context.Context, ref *time.Time) ([]time.Time, error)
}

type DateResolver interface {
	Resolve(token string) (time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
