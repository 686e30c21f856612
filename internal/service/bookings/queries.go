package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, "GetByID", id)
}

// GetAll получает все бронирования
func (s *Service) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// GetByIDs получает бронирования по списку ID, отсутствующие пропускаются
func (s *Service) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Booking, error) {
	if len(ids) > domain.MaxIDsPerRequest {
		return nil, fmt.Errorf("%w: %d ids, limit %d", domain.ErrInvalidOperation, len(ids), domain.MaxIDsPerRequest)
	}

	bookings, err := s.bookingRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("GetByIDs: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByIDs - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// GetByDates получает бронирования, целиком лежащие в [start, end]
func (s *Service) GetByDates(ctx context.Context, start, end time.Time) ([]*domain.Booking, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		Start: &start,
		End:   &end,
		Match: domain.RangeWithin,
	})
	if err != nil {
		s.logger.Error("GetByDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByDates - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// GetUserBookings получает бронирования пользователя.
// Если задан диапазон, возвращаются только бронирования, целиком лежащие в нем.
func (s *Service) GetUserBookings(ctx context.Context, userID int64, start, end *time.Time) ([]*domain.Booking, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, ErrInvalidRange
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		UserID: &userID,
		Start:  start,
		End:    end,
		Match:  domain.RangeWithin,
	})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), userID)
	return bookings, nil
}
