package domain

import (
	"fmt"
	"sort"
	"time"
)

// ParkingSpace represents a single space of the garage.
// Spaces are never hard-deleted: IsDeleted hides them from active listings while
// historical bookings keep pointing at them.
type ParkingSpace struct {
	ID        int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the space can take new bookings
func (s *ParkingSpace) IsActive() bool {
	return !s.IsDeleted
}

func (s *ParkingSpace) String() string {
	return fmt.Sprintf("parking space id=%d deleted=%t", s.ID, s.IsDeleted)
}

// SortSpacesByID orders spaces by ascending id in place
func SortSpacesByID(spaces []*ParkingSpace) {
	sort.Slice(spaces, func(i, j int) bool {
		return spaces[i].ID < spaces[j].ID
	})
}
