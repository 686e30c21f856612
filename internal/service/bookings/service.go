package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	spaceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// Service управляет жизненным циклом бронирований.
// Каждая проверка доступности и следующая за ней запись выполняются в одной
// сериализуемой транзакции; проигравший гонку получает ErrConflict.
type Service struct {
	bookingRepo     BookingRepository
	spaceRepo       SpaceRepository
	users           UserProvider
	availability    Availability
	txManager       TransactionManager
	metrics         MetricsRecorder
	fillConcurrency int
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	spaceRepo SpaceRepository,
	users UserProvider,
	availability Availability,
	txManager TransactionManager,
	metrics MetricsRecorder,
	fillConcurrency int,
	logger Logger,
) *Service {
	if fillConcurrency <= 0 {
		fillConcurrency = domain.DefaultFillConcurrency
	}
	return &Service{
		bookingRepo:     bookingRepo,
		spaceRepo:       spaceRepo,
		users:           users,
		availability:    availability,
		txManager:       txManager,
		metrics:         metrics,
		fillConcurrency: fillConcurrency,
		logger:          logger,
	}
}

// AddBooking создает бронирование для пользователя.
// Если предпочтительное место свободно, используется оно, иначе первое
// свободное место по возрастанию ID.
func (s *Service) AddBooking(ctx context.Context, userID int64, interval domain.Interval, preferredSpaceID *int64) (*domain.Booking, error) {
	s.logger.Info("AddBooking: user=%d, interval=%s, preferredSpace=%s", userID, interval, formatID(preferredSpaceID))

	booking, err := s.addBooking(ctx, userID, interval, preferredSpaceID)
	s.observe("add", err)
	return booking, err
}

// AddBookingAs создает бронирование от имени ActingUserID.
// Создать бронирование для другого пользователя может только менеджер.
func (s *Service) AddBookingAs(ctx context.Context, req *models.AddBookingRequest) (*domain.Booking, error) {
	acting, err := s.getUser(ctx, "AddBookingAs", req.ActingUserID)
	if err != nil {
		s.observe("add", err)
		return nil, err
	}
	if err := s.authorize("AddBookingAs", acting, req.UserID); err != nil {
		s.observe("add", err)
		return nil, err
	}
	return s.AddBooking(ctx, req.UserID, req.Interval, req.SpaceID)
}

func (s *Service) addBooking(ctx context.Context, userID int64, interval domain.Interval, preferredSpaceID *int64) (*domain.Booking, error) {
	if !interval.IsValid() {
		s.logger.Warn("AddBooking: invalid interval %s", interval)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, interval)
	}

	if _, err := s.getUser(ctx, "AddBooking", userID); err != nil {
		return nil, err
	}

	return s.insertBooking(ctx, userID, interval, preferredSpaceID)
}

// insertBooking выбирает место и сохраняет бронирование в сериализуемой транзакции
func (s *Service) insertBooking(ctx context.Context, userID int64, interval domain.Interval, preferredSpaceID *int64) (*domain.Booking, error) {
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		spaceID, err := s.pickSpace(txCtx, "AddBooking", interval, preferredSpaceID, nil)
		if err != nil {
			return err
		}

		created, err := s.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:  userID,
			SpaceID: spaceID,
			Start:   interval.Start,
			End:     interval.End,
		})
		if err != nil {
			return s.writeError("AddBooking", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, s.txError("AddBooking", err)
	}

	s.logger.Info("AddBooking: created booking id=%d for user=%d on space=%d", result.ID, userID, result.SpaceID)
	return result, nil
}

// UpdateBooking меняет владельца, интервал и место бронирования, сохраняя его ID.
// При проверке свободного места само бронирование не учитывается.
func (s *Service) UpdateBooking(ctx context.Context, req *models.UpdateBookingRequest) (*domain.Booking, error) {
	s.logger.Info("UpdateBooking: booking=%d, acting=%d, owner=%d, interval=%s, space=%s",
		req.BookingID, req.ActingUserID, req.UserID, req.Interval, formatID(req.SpaceID))

	booking, err := s.updateBooking(ctx, req)
	s.observe("update", err)
	return booking, err
}

func (s *Service) updateBooking(ctx context.Context, req *models.UpdateBookingRequest) (*domain.Booking, error) {
	if !req.Interval.IsValid() {
		s.logger.Warn("UpdateBooking: invalid interval %s", req.Interval)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInterval, req.Interval)
	}

	acting, err := s.getUser(ctx, "UpdateBooking", req.ActingUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, "UpdateBooking", req.UserID); err != nil {
		return nil, err
	}

	var result *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateBooking", req.BookingID)
		if err != nil {
			return err
		}
		if err := s.authorize("UpdateBooking", acting, booking.UserID); err != nil {
			return err
		}

		result, err = s.moveBooking(txCtx, booking, req.UserID, req.Interval, req.SpaceID)
		return err
	})
	if err != nil {
		return nil, s.txError("UpdateBooking", err)
	}

	s.logger.Info("UpdateBooking: booking id=%d now %s on space=%d", result.ID, req.Interval, result.SpaceID)
	return result, nil
}

// moveBooking сохраняет новое состояние бронирования внутри уже открытой транзакции.
// Без явного места предпочтение отдается текущему месту бронирования.
func (s *Service) moveBooking(ctx context.Context, booking *domain.Booking, ownerID int64, interval domain.Interval, preferredSpaceID *int64) (*domain.Booking, error) {
	if preferredSpaceID == nil {
		preferredSpaceID = &booking.SpaceID
	}

	spaceID, err := s.pickSpace(ctx, "UpdateBooking", interval, preferredSpaceID, &booking.ID)
	if err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.Update(ctx, &domain.Booking{
		ID:        booking.ID,
		UserID:    ownerID,
		SpaceID:   spaceID,
		Start:     interval.Start,
		End:       interval.End,
		CreatedAt: booking.CreatedAt,
	})
	if err != nil {
		return nil, s.writeError("UpdateBooking", err)
	}
	return updated, nil
}

// DeleteBooking удаляет бронирование
func (s *Service) DeleteBooking(ctx context.Context, bookingID, actingUserID int64) error {
	s.logger.Info("DeleteBooking: booking=%d, acting=%d", bookingID, actingUserID)

	err := s.deleteBooking(ctx, bookingID, actingUserID)
	s.observe("delete", err)
	return err
}

func (s *Service) deleteBooking(ctx context.Context, bookingID, actingUserID int64) error {
	acting, err := s.getUser(ctx, "DeleteBooking", actingUserID)
	if err != nil {
		return err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "DeleteBooking", bookingID)
		if err != nil {
			return err
		}
		if err := s.authorize("DeleteBooking", acting, booking.UserID); err != nil {
			return err
		}
		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			return s.writeError("DeleteBooking", err)
		}
		return nil
	})
	if err != nil {
		return s.txError("DeleteBooking", err)
	}

	s.logger.Info("DeleteBooking: booking id=%d deleted", bookingID)
	return nil
}

// RemoveDayFromBooking убирает календарный день из бронирования.
// Однодневное бронирование удаляется, первый или последний день отрезается,
// день в середине разбивает бронирование на два. Возвращает оставшиеся части.
func (s *Service) RemoveDayFromBooking(ctx context.Context, bookingID int64, day time.Time, actingUserID int64) ([]*domain.Booking, error) {
	s.logger.Info("RemoveDayFromBooking: booking=%d, day=%s, acting=%d", bookingID, day.Format(domain.DateFormat), actingUserID)

	remaining, err := s.removeDay(ctx, bookingID, day, actingUserID)
	s.observe("remove_day", err)
	return remaining, err
}

func (s *Service) removeDay(ctx context.Context, bookingID int64, day time.Time, actingUserID int64) ([]*domain.Booking, error) {
	acting, err := s.getUser(ctx, "RemoveDayFromBooking", actingUserID)
	if err != nil {
		return nil, err
	}

	var remaining []*domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "RemoveDayFromBooking", bookingID)
		if err != nil {
			return err
		}
		if err := s.authorize("RemoveDayFromBooking", acting, booking.UserID); err != nil {
			return err
		}

		if domain.CompareDays(day, booking.Start) < 0 || domain.CompareDays(day, booking.End) > 0 {
			s.logger.Warn("RemoveDayFromBooking: day %s is outside booking id=%d %s",
				day.Format(domain.DateFormat), bookingID, booking.Interval())
			return ErrDayOutsideBooking
		}

		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, booking.Start.Location())
		nextDay := dayStart.AddDate(0, 0, 1)
		prevDayEnd := domain.LastMinuteOfDay(dayStart.AddDate(0, 0, -1))

		switch {
		case booking.SpansSingleDay():
			if err := s.bookingRepo.Delete(txCtx, booking.ID); err != nil {
				return s.writeError("RemoveDayFromBooking", err)
			}
			remaining = []*domain.Booking{}
			return nil

		case domain.CompareDays(day, booking.Start) == 0:
			shrunk, err := s.shrink(txCtx, booking, domain.Interval{Start: nextDay, End: booking.End})
			if err != nil {
				return err
			}
			remaining = shrunk
			return nil

		case domain.CompareDays(day, booking.End) == 0:
			shrunk, err := s.shrink(txCtx, booking, domain.Interval{Start: booking.Start, End: prevDayEnd})
			if err != nil {
				return err
			}
			remaining = shrunk
			return nil

		default:
			head, err := s.narrow(txCtx, booking, domain.Interval{Start: booking.Start, End: prevDayEnd})
			if err != nil {
				return err
			}
			tail, err := s.bookingRepo.Create(txCtx, &domain.Booking{
				UserID:  booking.UserID,
				SpaceID: booking.SpaceID,
				Start:   nextDay,
				End:     booking.End,
			})
			if err != nil {
				return s.writeError("RemoveDayFromBooking", err)
			}
			remaining = []*domain.Booking{head, tail}
			return nil
		}
	})
	if err != nil {
		return nil, s.txError("RemoveDayFromBooking", err)
	}

	s.logger.Info("RemoveDayFromBooking: booking id=%d left %d part(s)", bookingID, len(remaining))
	return remaining, nil
}

// shrink сужает бронирование до interval. Если от бронирования ничего не осталось, оно удаляется.
func (s *Service) shrink(ctx context.Context, booking *domain.Booking, interval domain.Interval) ([]*domain.Booking, error) {
	if !interval.IsValid() {
		if err := s.bookingRepo.Delete(ctx, booking.ID); err != nil {
			return nil, s.writeError("RemoveDayFromBooking", err)
		}
		return []*domain.Booking{}, nil
	}

	updated, err := s.narrow(ctx, booking, interval)
	if err != nil {
		return nil, err
	}
	return []*domain.Booking{updated}, nil
}

// narrow сохраняет бронирование с более узким интервалом на том же месте.
// Выбор места не выполняется: место могло быть удалено после бронирования.
func (s *Service) narrow(ctx context.Context, booking *domain.Booking, interval domain.Interval) (*domain.Booking, error) {
	updated, err := s.bookingRepo.Update(ctx, &domain.Booking{
		ID:        booking.ID,
		UserID:    booking.UserID,
		SpaceID:   booking.SpaceID,
		Start:     interval.Start,
		End:       interval.End,
		CreatedAt: booking.CreatedAt,
	})
	if err != nil {
		return nil, s.writeError("RemoveDayFromBooking", err)
	}
	return updated, nil
}

// pickSpace выбирает место: предпочтительное, если оно активно и свободно,
// иначе первое свободное по возрастанию ID
func (s *Service) pickSpace(ctx context.Context, op string, interval domain.Interval, preferredSpaceID, excludeBookingID *int64) (int64, error) {
	if preferredSpaceID != nil {
		space, err := s.spaceRepo.GetByID(ctx, *preferredSpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				s.logger.Warn("%s: preferred space id=%d not found", op, *preferredSpaceID)
				return 0, ErrSpaceNotFound
			}
			s.logger.Error("%s: failed to get space id=%d: %v", op, *preferredSpaceID, err)
			return 0, fmt.Errorf("%w: %s - get space: %v", ErrInternal, op, err)
		}

		if space.IsActive() {
			free, err := s.availability.IsSpaceFree(ctx, space.ID, interval, excludeBookingID)
			if err != nil {
				return 0, s.availabilityError(op, err)
			}
			if free {
				return space.ID, nil
			}
			s.logger.Info("%s: preferred space id=%d is taken in %s, falling back", op, space.ID, interval)
		} else {
			s.logger.Warn("%s: preferred space id=%d is deleted, falling back", op, space.ID)
		}
	}

	spaces, err := s.availability.AvailableSpaces(ctx, interval)
	if err != nil {
		return 0, s.availabilityError(op, err)
	}
	if len(spaces) == 0 {
		s.logger.Warn("%s: no available space in %s", op, interval)
		return 0, ErrNoAvailability
	}

	return spaces[0].ID, nil
}

func (s *Service) getUser(ctx context.Context, op string, userID int64) (*domain.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: failed to get user id=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - get user: %v", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) getBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		return nil, s.writeError(op, err)
	}
	return booking, nil
}

// authorize проверяет, что acting владелец бронирований ownerID или менеджер
func (s *Service) authorize(op string, acting *domain.User, ownerID int64) error {
	if acting.CanManageBookingsOf(ownerID) {
		return nil
	}
	s.logger.Warn("%s: user id=%d may not manage bookings of user id=%d", op, acting.ID, ownerID)
	return ErrAccessDenied
}

// writeError переводит ошибку хранилища в ошибку сервиса
func (s *Service) writeError(op string, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrOverlap), txmanager.IsSerializationFailure(err):
		s.logger.Warn("%s: lost a race for the space: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) availabilityError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrSpaceNotFound
	}
	if errors.Is(err, domain.ErrInvalidInterval) {
		return err
	}
	return s.writeError(op, err)
}

// txError обрабатывает ошибку, возвращенную транзакцией целиком (включая commit)
func (s *Service) txError(op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		s.logger.Warn("%s: transaction rejected by a concurrent update: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	return err
}

func (s *Service) observe(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveBookingOperation(operation, resultLabel(err))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInterval), errors.Is(err, domain.ErrInvalidOperation):
		return "invalid"
	default:
		return "error"
	}
}

func formatID(id *int64) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
