package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// Service вычисляет занятость мест. Результаты не кэшируются:
// каждый вызов читает хранилище, поэтому запись сразу видна следующему запросу.
type Service struct {
	bookingRepo BookingRepository
	spaceRepo   SpaceRepository
	clock       Clock
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		spaceRepo:   spaceRepo,
		clock:       clock,
		logger:      logger,
	}
}

// IsSpaceFree проверяет, свободно ли место в интервале.
// Если единственное пересекающееся бронирование имеет ID excludeBookingID,
// место считается свободным (бронирование сохраняет свое место при переносе).
func (s *Service) IsSpaceFree(ctx context.Context, spaceID int64, interval domain.Interval, excludeBookingID *int64) (bool, error) {
	if !interval.IsValid() {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, interval)
	}

	if _, err := s.spaceRepo.GetByID(ctx, spaceID); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("IsSpaceFree: space id=%d not found", spaceID)
			return false, ErrSpaceNotFound
		}
		s.logger.Error("IsSpaceFree: failed to get space id=%d: %v", spaceID, err)
		return false, fmt.Errorf("%w: IsSpaceFree - get space: %v", ErrInternal, err)
	}

	overlapping, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		SpaceID: ptr.Ptr(spaceID),
		Start:   ptr.Ptr(interval.Start),
		End:     ptr.Ptr(interval.End),
	})
	if err != nil {
		s.logger.Error("IsSpaceFree: failed to get bookings for space id=%d: %v", spaceID, err)
		return false, fmt.Errorf("%w: IsSpaceFree - get bookings: %w", ErrInternal, err)
	}

	switch {
	case len(overlapping) == 0:
		return true, nil
	case len(overlapping) == 1 && excludeBookingID != nil && overlapping[0].ID == *excludeBookingID:
		return true, nil
	default:
		return false, nil
	}
}

// AvailableSpaces возвращает активные места без пересекающихся бронирований, по возрастанию ID
func (s *Service) AvailableSpaces(ctx context.Context, interval domain.Interval) ([]*domain.ParkingSpace, error) {
	if !interval.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, interval)
	}

	active, err := s.spaceRepo.GetAllActive(ctx)
	if err != nil {
		s.logger.Error("AvailableSpaces: failed to get active spaces: %v", err)
		return nil, fmt.Errorf("%w: AvailableSpaces - get spaces: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		Start: ptr.Ptr(interval.Start),
		End:   ptr.Ptr(interval.End),
	})
	if err != nil {
		s.logger.Error("AvailableSpaces: failed to get bookings in %s: %v", interval, err)
		return nil, fmt.Errorf("%w: AvailableSpaces - get bookings: %w", ErrInternal, err)
	}

	return freeSpaces(active, bookings, interval), nil
}

// AvailableSpacesForDay возвращает свободные места на весь календарный день [00:00:00, 23:59:59]
func (s *Service) AvailableSpacesForDay(ctx context.Context, day time.Time) ([]*domain.ParkingSpace, error) {
	return s.AvailableSpaces(ctx, domain.DayWindow(day))
}

// EmptySpaceCount возвращает количество свободных мест в интервале
func (s *Service) EmptySpaceCount(ctx context.Context, interval domain.Interval) (int, error) {
	spaces, err := s.AvailableSpaces(ctx, interval)
	if err != nil {
		return 0, err
	}
	return len(spaces), nil
}

// EmptySpaceCountForDay возвращает количество мест, свободных весь день
func (s *Service) EmptySpaceCountForDay(ctx context.Context, day time.Time) (int, error) {
	return s.EmptySpaceCount(ctx, domain.DayWindow(day))
}

// FullDaysOfMonth возвращает дни месяца, в которые не осталось ни одного свободного места.
// Если ref == nil, берется текущий месяц. Хранилище читается один раз на весь месяц.
func (s *Service) FullDaysOfMonth(ctx context.Context, ref *time.Time) ([]time.Time, error) {
	month := s.clock.Now()
	if ref != nil {
		month = *ref
	}

	days := domain.DaysOfMonth(month)
	window := domain.Interval{Start: days[0], End: domain.EndOfDay(days[len(days)-1])}

	active, err := s.spaceRepo.GetAllActive(ctx)
	if err != nil {
		s.logger.Error("FullDaysOfMonth: failed to get active spaces: %v", err)
		return nil, fmt.Errorf("%w: FullDaysOfMonth - get spaces: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		Start: ptr.Ptr(window.Start),
		End:   ptr.Ptr(window.End),
	})
	if err != nil {
		s.logger.Error("FullDaysOfMonth: failed to get bookings in %s: %v", window, err)
		return nil, fmt.Errorf("%w: FullDaysOfMonth - get bookings: %v", ErrInternal, err)
	}

	full := make([]time.Time, 0)
	for _, day := range days {
		if len(freeSpaces(active, bookings, domain.DayWindow(day))) == 0 {
			full = append(full, day)
		}
	}

	s.logger.Info("FullDaysOfMonth: %d of %d days are full in %s", len(full), len(days), days[0].Format("2006-01"))
	return full, nil
}

// freeSpaces вычитает из active места бронирований, пересекающих interval
func freeSpaces(active []*domain.ParkingSpace, bookings []*domain.Booking, interval domain.Interval) []*domain.ParkingSpace {
	occupied := make(map[int64]struct{})
	for _, b := range bookings {
		if b.Overlaps(interval) {
			occupied[b.SpaceID] = struct{}{}
		}
	}

	free := make([]*domain.ParkingSpace, 0, len(active))
	for _, sp := range active {
		if !sp.IsActive() {
			continue
		}
		if _, taken := occupied[sp.ID]; !taken {
			free = append(free, sp)
		}
	}
	domain.SortSpacesByID(free)
	return free
}
