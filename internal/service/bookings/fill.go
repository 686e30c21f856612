package bookings

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// FillDaysWithBookings создает отдельное бронирование на каждый день диапазона.
// Дни бронируются параллельно (не более fillConcurrency одновременно), сервис
// дожидается всех. Если хотя бы один день не удалось забронировать, созданные
// бронирования удаляются и возвращается первая ошибка.
func (s *Service) FillDaysWithBookings(ctx context.Context, req *models.FillDaysRequest) ([]*domain.Booking, error) {
	s.logger.Info("FillDaysWithBookings: acting=%d, user=%d, range=%s..%s, space=%s",
		req.ActingUserID, req.UserID, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat), formatID(req.SpaceID))

	created, err := s.fillDays(ctx, req)
	s.observe("fill", err)
	return created, err
}

func (s *Service) fillDays(ctx context.Context, req *models.FillDaysRequest) ([]*domain.Booking, error) {
	acting, err := s.getUser(ctx, "FillDaysWithBookings", req.ActingUserID)
	if err != nil {
		return nil, err
	}
	target, err := s.getUser(ctx, "FillDaysWithBookings", req.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize("FillDaysWithBookings", acting, target.ID); err != nil {
		return nil, err
	}

	if req.Start.After(req.End) {
		s.logger.Warn("FillDaysWithBookings: range start %s is after end %s", req.Start, req.End)
		return nil, ErrInvalidRange
	}

	days := domain.DaysBetween(req.Start, req.End)
	if len(days) > domain.MaxFillDays {
		s.logger.Warn("FillDaysWithBookings: %d days requested, limit is %d", len(days), domain.MaxFillDays)
		return nil, fmt.Errorf("%w: %d days, limit %d", ErrRangeTooLong, len(days), domain.MaxFillDays)
	}

	windows := make([]domain.Interval, 0, len(days))
	for _, day := range days {
		window, err := dailyWindow(day, req.Start, req.End)
		if err != nil {
			s.logger.Warn("FillDaysWithBookings: %v", err)
			return nil, err
		}
		windows = append(windows, window)
	}

	created := make([]*domain.Booking, len(windows))

	var g errgroup.Group
	g.SetLimit(s.fillConcurrency)
	for i, window := range windows {
		g.Go(func() error {
			booking, err := s.insertBooking(ctx, target.ID, window, req.SpaceID)
			if err != nil {
				return fmt.Errorf("day %s: %w", window.Start.Format(domain.DateFormat), err)
			}
			created[i] = booking
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("FillDaysWithBookings: failed for user=%d: %v", target.ID, err)
		if cerr := s.compensate(ctx, created); cerr != nil {
			return nil, fmt.Errorf("%w; compensation failed: %v", err, cerr)
		}
		return nil, err
	}

	s.logger.Info("FillDaysWithBookings: created %d bookings for user=%d", len(created), target.ID)
	return created, nil
}

// compensate удаляет бронирования, созданные до сбоя заполнения
func (s *Service) compensate(ctx context.Context, created []*domain.Booking) error {
	ids := make([]int64, 0, len(created))
	for _, b := range created {
		if b != nil {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		removed, err := s.bookingRepo.DeleteMany(txCtx, ids)
		if err != nil {
			s.logger.Error("FillDaysWithBookings: failed to roll back %d bookings: %v", len(ids), err)
			return fmt.Errorf("%w: compensate - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("FillDaysWithBookings: rolled back %d of %d created bookings", removed, len(ids))
		return nil
	})
}

// dailyWindow строит окно бронирования на день: время начала и конца берется из start и end.
// Конец в 00:00:00 означает конец дня.
func dailyWindow(day, start, end time.Time) (domain.Interval, error) {
	from := domain.AtClockOf(day, start)
	to := domain.AtClockOf(day, end)
	if domain.IsMidnight(end) {
		to = domain.EndOfDay(day)
	}
	return domain.NewInterval(from, to)
}

// RemoveBookingsFromDaysInRange удаляет все бронирования пользователя, пересекающие диапазон.
// Возвращает количество удаленных бронирований.
func (s *Service) RemoveBookingsFromDaysInRange(ctx context.Context, req *models.RemoveDaysRequest) (int64, error) {
	s.logger.Info("RemoveBookingsFromDaysInRange: acting=%d, user=%d, range=%s..%s",
		req.ActingUserID, req.UserID, req.Start, req.End)

	removed, err := s.removeRange(ctx, req)
	s.observe("remove_range", err)
	return removed, err
}

func (s *Service) removeRange(ctx context.Context, req *models.RemoveDaysRequest) (int64, error) {
	acting, err := s.getUser(ctx, "RemoveBookingsFromDaysInRange", req.ActingUserID)
	if err != nil {
		return 0, err
	}
	target, err := s.getUser(ctx, "RemoveBookingsFromDaysInRange", req.UserID)
	if err != nil {
		return 0, err
	}
	if err := s.authorize("RemoveBookingsFromDaysInRange", acting, target.ID); err != nil {
		return 0, err
	}

	if req.Start.After(req.End) {
		s.logger.Warn("RemoveBookingsFromDaysInRange: range start %s is after end %s", req.Start, req.End)
		return 0, ErrInvalidRange
	}

	var removed int64
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookingRepo.GetWithFilter(txCtx, domain.BookingsFilter{
			UserID: &target.ID,
			Start:  &req.Start,
			End:    &req.End,
		})
		if err != nil {
			return s.writeError("RemoveBookingsFromDaysInRange", err)
		}
		if len(bookings) == 0 {
			s.logger.Warn("RemoveBookingsFromDaysInRange: user=%d has no bookings in range", target.ID)
			return ErrNothingToRemove
		}

		ids := make([]int64, 0, len(bookings))
		for _, b := range bookings {
			ids = append(ids, b.ID)
		}

		removed, err = s.bookingRepo.DeleteMany(txCtx, ids)
		if err != nil {
			return s.writeError("RemoveBookingsFromDaysInRange", err)
		}
		return nil
	})
	if err != nil {
		return 0, s.txError("RemoveBookingsFromDaysInRange", err)
	}

	s.logger.Info("RemoveBookingsFromDaysInRange: removed %d bookings of user=%d", removed, target.ID)
	return removed, nil
}
