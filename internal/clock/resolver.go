package clock

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Ключевые слова, распознаваемые резолвером (с учётом регистра)
const (
	TokenNow        = "now"
	TokenToday      = "today"
	TokenTomorrow   = "tomorrow"
	TokenEndOfToday = "endOfToday"
)

// layouts перечисляет поддерживаемые форматы в порядке проверки.
// Первым идёт формат по умолчанию, чтобы Resolve(Format(ts)) возвращал ts.
var layouts = []string{
	domain.TimestampFormat,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02-15-04",
	domain.DateFormat,
}

// Resolver переводит строковые токены дат в time.Time и обратно
type Resolver struct {
	clock    Clock
	location *time.Location
}

// NewResolver создает резолвер.
// location задаёт часовой пояс ключевых слов (today, tomorrow...); nil означает time.Local
func NewResolver(clock Clock, location *time.Location) *Resolver {
	if clock == nil {
		clock = RealClock{}
	}
	if location == nil {
		location = time.Local
	}
	return &Resolver{
		clock:    clock,
		location: location,
	}
}

// Now возвращает настенное время в часовом поясе резолвера с меткой UTC,
// в том же виде, что и разобранные строки дат
func (r *Resolver) Now() time.Time {
	return asUTC(r.clock.Now().In(r.location))
}

// Resolve разбирает токен даты.
// Ключевые слова вычисляются от текущего времени; любая другая строка разбирается
// по списку форматов, после чего часовой пояс результата помечается как UTC
// (значения даты и времени при этом не меняются).
func (r *Resolver) Resolve(token string) (time.Time, error) {
	now := r.Now()

	switch token {
	case TokenNow:
		return now, nil
	case TokenToday:
		return domain.StartOfDay(now), nil
	case TokenTomorrow:
		return domain.StartOfDay(now).AddDate(0, 0, 1), nil
	case TokenEndOfToday:
		return domain.LastMinuteOfDay(now), nil
	}

	value := strings.TrimSpace(token)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidToken)
	}

	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return asUTC(parsed), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
}

// ResolveRange разбирает пару токенов начала и конца
func (r *Resolver) ResolveRange(startToken, endToken string) (time.Time, time.Time, error) {
	start, err := r.Resolve(startToken)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := r.Resolve(endToken)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Format форматирует время; без layout используется формат по умолчанию yyyy-MM-dd-HH-mm-ss
func Format(ts time.Time, layout ...string) string {
	if len(layout) > 0 && layout[0] != "" {
		return ts.Format(layout[0])
	}
	return ts.Format(domain.TimestampFormat)
}

// asUTC меняет только метку часового пояса, сохраняя настенное время
func asUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
