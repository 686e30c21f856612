package clock

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidToken возвращается, когда токен не является ключевым словом и не разбирается как дата
	ErrInvalidToken = fmt.Errorf("clock: %w", domain.ErrParse)
)
