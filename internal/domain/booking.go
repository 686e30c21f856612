package domain

import "time"

// Booking represents a reservation of one parking space for a closed time interval.
// Both Start and End are inclusive.
type Booking struct {
	ID        int64
	UserID    int64
	SpaceID   int64
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// Overlaps reports whether the booking intersects the given interval (inclusive on both ends)
func (b *Booking) Overlaps(i Interval) bool {
	return b.Interval().Overlaps(i)
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// SpansSingleDay returns true if the booking starts and ends on the same calendar day
func (b *Booking) SpansSingleDay() bool {
	return SameDay(b.Start, b.End)
}

// RangeMatch defines how a booking is matched against a time range
type RangeMatch int

const (
	// RangeOverlap matches bookings intersecting the range (inclusive)
	RangeOverlap RangeMatch = iota
	// RangeWithin matches bookings fully contained in the range
	RangeWithin
)

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID  *int64     // Фильтр по владельцу (опционально)
	SpaceID *int64     // Фильтр по парковочному месту (опционально)
	Start   *time.Time // Начало диапазона (опционально, если nil - без ограничения)
	End     *time.Time // Конец диапазона (опционально, если nil - без ограничения)
	Match   RangeMatch // Способ сопоставления с диапазоном
}

// Matches applies the filter to a single booking.
// Storage drivers that filter in memory must agree with the SQL built from the same filter.
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.UserID != nil && b.UserID != *f.UserID {
		return false
	}
	if f.SpaceID != nil && b.SpaceID != *f.SpaceID {
		return false
	}

	switch f.Match {
	case RangeWithin:
		if f.Start != nil && b.Start.Before(*f.Start) {
			return false
		}
		if f.End != nil && b.End.After(*f.End) {
			return false
		}
	default:
		if f.Start != nil && b.End.Before(*f.Start) {
			return false
		}
		if f.End != nil && b.Start.After(*f.End) {
			return false
		}
	}

	return true
}
