// Package memory хранит бронирования, места и пользователей в памяти процесса.
// Используется драйвером storage.driver = "memory" и тестами сервисов.
// Ошибки совпадают с ошибками postgres-репозиториев, поэтому сервисы
// работают с обоими драйверами одинаково.
package memory

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Store общее состояние драйвера
type Store struct {
	// txMu сериализует транзакции, mu защищает данные
	txMu sync.Mutex
	mu   sync.RWMutex

	bookings map[int64]domain.Booking
	spaces   map[int64]domain.ParkingSpace
	users    map[int64]domain.User

	nextBookingID int64
	nextSpaceID   int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[int64]domain.Booking),
		spaces:   make(map[int64]domain.ParkingSpace),
		users:    make(map[int64]domain.User),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Bookings возвращает хранилище бронирований
func (s *Store) Bookings() *BookingStore {
	return &BookingStore{store: s}
}

// Spaces возвращает хранилище мест
func (s *Store) Spaces() *SpaceStore {
	return &SpaceStore{store: s}
}

// Users возвращает справочник пользователей
func (s *Store) Users() *UserStore {
	return &UserStore{store: s}
}

// TxManager возвращает менеджер транзакций над этим хранилищем
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// AddSpaces добавляет n активных мест
func (s *Store) AddSpaces(n int) []*domain.ParkingSpace {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]*domain.ParkingSpace, 0, n)
	for i := 0; i < n; i++ {
		added = append(added, s.insertSpaceLocked())
	}
	return added
}

// PutUser добавляет или заменяет пользователя
func (s *Store) PutUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *Store) insertSpaceLocked() *domain.ParkingSpace {
	s.nextSpaceID++
	now := s.now()
	space := domain.ParkingSpace{ID: s.nextSpaceID, CreatedAt: now, UpdatedAt: now}
	s.spaces[space.ID] = space
	return &space
}

type snapshot struct {
	bookings      map[int64]domain.Booking
	spaces        map[int64]domain.ParkingSpace
	nextBookingID int64
	nextSpaceID   int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		bookings:      make(map[int64]domain.Booking, len(s.bookings)),
		spaces:        make(map[int64]domain.ParkingSpace, len(s.spaces)),
		nextBookingID: s.nextBookingID,
		nextSpaceID:   s.nextSpaceID,
	}
	for id, b := range s.bookings {
		snap.bookings[id] = b
	}
	for id, sp := range s.spaces {
		snap.spaces[id] = sp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = snap.bookings
	s.spaces = snap.spaces
	s.nextBookingID = snap.nextBookingID
	s.nextSpaceID = snap.nextSpaceID
}
