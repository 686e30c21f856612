package spaces

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда место не найдено
	ErrSpaceNotFound = fmt.Errorf("spaces: %w: parking space", domain.ErrNotFound)

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = fmt.Errorf("spaces: %w: user", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда изменить инвентарь пытается не менеджер
	ErrAccessDenied = fmt.Errorf("spaces: %w: only managers may change spaces", domain.ErrUnauthorized)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("spaces: internal error")
)
