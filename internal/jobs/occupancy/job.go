package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const runTimeout = 30 * time.Second

// Job пересчитывает количество свободных на сегодня мест и выставляет gauge
type Job struct {
	counter Counter
	gauge   Gauge
	clock   Clock
	logger  Logger
}

// NewJob создает задачу пересчета занятости
func NewJob(counter Counter, gauge Gauge, clock Clock, logger Logger) *Job {
	return &Job{counter: counter, gauge: gauge, clock: clock, logger: logger}
}

// Run реализует cron.Job
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("occupancy: %v", err)
	}
}

// RunOnce выполняет один пересчет и возвращает количество свободных мест
func (j *Job) RunOnce(ctx context.Context) (int, error) {
	today := j.clock.Now()

	count, err := j.counter.EmptySpaceCountForDay(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("count empty spaces for %s: %w", today.Format(domain.DateFormat), err)
	}

	j.gauge.SetEmptySpacesToday(count)
	j.logger.Info("occupancy: %d empty spaces on %s", count, today.Format(domain.DateFormat))
	return count, nil
}

// Schedule регистрирует задачу по расписанию и запускает планировщик.
// Остановить планировщик можно через Stop у возвращенного *cron.Cron.
func Schedule(spec string, job *Job) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(job)); err != nil {
		return nil, fmt.Errorf("occupancy: invalid schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
