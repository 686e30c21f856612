package domain

// UserType represents the role of a user
type UserType string

const (
	UserTypeRegular UserType = "RegularUser"
	UserTypeManager UserType = "Manager"
)

// User is the part of a user account the booking engine relies on.
// Accounts are owned by the user service; this service only reads them.
type User struct {
	ID    int64
	Name  string
	Email string
	Type  UserType
}

// IsManager returns true if the user may manage any booking and the space inventory
func (u *User) IsManager() bool {
	return u.Type == UserTypeManager
}

// CanManageBookingsOf returns true if the user may act on bookings owned by ownerID
func (u *User) CanManageBookingsOf(ownerID int64) bool {
	return u.ID == ownerID || u.IsManager()
}
