package get_full_days

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// FullDaysResponse HTTP response model
type FullDaysResponse struct {
	Days []string `json:"days"` // ["2024-01-05", ...]
}

func fromDays(days []time.Time) FullDaysResponse {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format(domain.DateFormat))
	}
	return FullDaysResponse{Days: out}
}
