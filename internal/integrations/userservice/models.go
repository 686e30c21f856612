package userservice

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// User пользователь в формате UserService
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type"` // RegularUser | Manager
}

// HasKnownType сообщает, умеет ли сервис работать с типом пользователя
func (u *User) HasKnownType() bool {
	switch domain.UserType(u.UserType) {
	case domain.UserTypeRegular, domain.UserTypeManager:
		return true
	}
	return false
}

func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Type:  domain.UserType(u.UserType),
	}
}

// ErrorResponse тело ошибки UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
