package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrSpaceNotFound возвращается, когда место с указанным ID неизвестно
	ErrSpaceNotFound = fmt.Errorf("availability: %w: parking space", domain.ErrNotFound)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
