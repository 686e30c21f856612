package update_booking

// UpdateBookingRequest HTTP request model.
// spaceId не обязателен: по умолчанию сохраняется текущее место, если оно свободно.
type UpdateBookingRequest struct {
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	Start   string `json:"start" validate:"required"`
	End     string `json:"end" validate:"required"`
	SpaceID *int64 `json:"spaceId,omitempty" validate:"omitempty,gt=0"`
}
