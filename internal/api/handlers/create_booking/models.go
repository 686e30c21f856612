package create_booking

// CreateBookingRequest HTTP request model.
// Без userId бронирование создается на пользователя из X-User-ID.
type CreateBookingRequest struct {
	UserID  *int64 `json:"userId,omitempty" validate:"omitempty,gt=0"`
	Start   string `json:"start" validate:"required"` // "2024-01-10-08-00-00", "today", ...
	End     string `json:"end" validate:"required"`
	SpaceID *int64 `json:"spaceId,omitempty" validate:"omitempty,gt=0"`
}
