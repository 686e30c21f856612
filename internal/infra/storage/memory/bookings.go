package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// BookingStore хранилище бронирований с теми же гарантиями, что и таблица bookings:
// пересекающиеся бронирования одного места отклоняются с booking.ErrOverlap.
type BookingStore struct {
	store *Store
}

func (r *BookingStore) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlapsLocked(b.SpaceID, b.Interval(), 0) {
		return nil, booking.ErrOverlap
	}

	s.nextBookingID++
	created := *b
	created.ID = s.nextBookingID
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt
	s.bookings[created.ID] = created

	return &created, nil
}

func (r *BookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingStore) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	return r.GetWithFilter(ctx, domain.BookingsFilter{})
}

func (r *BookingStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if b, ok := s.bookings[id]; ok {
			result = append(result, &b)
		}
	}
	sortBookings(result)
	return result, nil
}

func (r *BookingStore) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		b := b
		if filter.Matches(&b) {
			result = append(result, &b)
		}
	}
	sortBookings(result)
	return result, nil
}

func (r *BookingStore) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.bookings[b.ID]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	if s.overlapsLocked(b.SpaceID, b.Interval(), b.ID) {
		return nil, booking.ErrOverlap
	}

	updated := *b
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()
	s.bookings[updated.ID] = updated

	return &updated, nil
}

func (r *BookingStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (r *BookingStore) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for _, id := range ids {
		if _, ok := s.bookings[id]; ok {
			delete(s.bookings, id)
			removed++
		}
	}
	return removed, nil
}

// overlapsLocked повторяет exclusion constraint: одно место, пересечение [start, end] включительно
func (s *Store) overlapsLocked(spaceID int64, interval domain.Interval, exceptID int64) bool {
	for id, b := range s.bookings {
		if id == exceptID || b.SpaceID != spaceID {
			continue
		}
		if b.Overlaps(interval) {
			return true
		}
	}
	return false
}

func sortBookings(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].Start.Before(bookings[j].Start)
		}
		return bookings[i].ID < bookings[j].ID
	})
}
