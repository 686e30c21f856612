package occupancy

import (
	"context"
	"time"
)

// Counter считает свободные места на день
type Counter interface {
	EmptySpaceCountForDay(ctx context.Context, day time.Time) (int, error)
}

// Gauge принимает результат расчета
type Gauge interface {
	SetEmptySpacesToday(count int)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
