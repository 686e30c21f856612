package domain

import "errors"

// Error taxonomy shared by every layer. Package level sentinels wrap these,
// so callers may match either the specific or the generic error with errors.Is.
var (
	// ErrParse возвращается, когда строку даты не удалось разобрать
	ErrParse = errors.New("date could not be parsed")

	// ErrNotFound возвращается, когда пользователь, бронирование или место не найдены
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized возвращается, когда у пользователя нет прав на операцию
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInterval возвращается, когда начало интервала позже конца
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrNoAvailability возвращается, когда в интервале нет ни одного свободного места
	ErrNoAvailability = errors.New("no available parking space")

	// ErrInvalidOperation возвращается при нарушении правил операции над диапазоном дат
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict возвращается, когда параллельная операция уже заняла место
	ErrConflict = errors.New("conflict with a concurrent booking")
)
