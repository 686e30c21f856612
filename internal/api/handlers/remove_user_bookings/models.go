package remove_user_bookings

// RemoveUserBookingsResponse HTTP response model
type RemoveUserBookingsResponse struct {
	UserID  int64 `json:"userId"`
	Removed int64 `json:"removed"`
}
