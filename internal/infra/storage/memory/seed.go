package memory

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// NewSeededStore создает хранилище с местами и пользователями из секции [memory]
func NewSeededStore(cfg config.MemoryConfig) (*Store, error) {
	store := NewStore()
	store.AddSpaces(cfg.Spaces)

	for _, u := range cfg.Users {
		userType := domain.UserType(u.Type)
		switch userType {
		case domain.UserTypeRegular, domain.UserTypeManager:
		case "":
			userType = domain.UserTypeRegular
		default:
			return nil, fmt.Errorf("memory: user id=%d has unknown type %q", u.ID, u.Type)
		}
		store.PutUser(domain.User{ID: u.ID, Name: u.Name, Email: u.Email, Type: userType})
	}

	return store, nil
}
