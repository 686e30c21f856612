package get_bookings_by_ids

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// GetBookingsByIDsRequest HTTP request model
type GetBookingsByIDsRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

const maxIDs = domain.MaxIDsPerRequest
