package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: %w: booking", domain.ErrNotFound)

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("bookings: %w: user", domain.ErrNotFound)

	// ErrSpaceNotFound возвращается, когда выбранное место не существует
	ErrSpaceNotFound = fmt.Errorf("bookings: %w: parking space", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь не владелец бронирования и не менеджер
	ErrAccessDenied = fmt.Errorf("bookings: %w: access denied", domain.ErrUnauthorized)

	// ErrNoAvailability возвращается, когда в интервале нет свободных мест
	ErrNoAvailability = fmt.Errorf("bookings: %w", domain.ErrNoAvailability)

	// ErrConflict возвращается, когда параллельная операция заняла место раньше
	ErrConflict = fmt.Errorf("bookings: %w", domain.ErrConflict)

	// ErrDayOutsideBooking возвращается, когда удаляемый день не входит в бронирование
	ErrDayOutsideBooking = fmt.Errorf("bookings: %w: day is outside the booking", domain.ErrInvalidOperation)

	// ErrInvalidRange возвращается, когда начало диапазона позже конца
	ErrInvalidRange = fmt.Errorf("bookings: %w: range start is after range end", domain.ErrInvalidOperation)

	// ErrRangeTooLong возвращается, когда диапазон заполнения слишком длинный
	ErrRangeTooLong = fmt.Errorf("bookings: %w: range is too long", domain.ErrInvalidOperation)

	// ErrNothingToRemove возвращается, когда у пользователя нет бронирований в диапазоне
	ErrNothingToRemove = fmt.Errorf("bookings: %w: user has no bookings in range", domain.ErrInvalidOperation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
