package fill_bookings

// FillBookingsRequest HTTP request model.
// Даты start и end задают диапазон дней, время - окно бронирования внутри каждого дня.
type FillBookingsRequest struct {
	Start   string `json:"start" validate:"required"` // "2024-01-08-08-00-00"
	End     string `json:"end" validate:"required"`   // "2024-01-12-18-00-00"
	SpaceID *int64 `json:"spaceId,omitempty" validate:"omitempty,gt=0"`
}
