package spaces

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	spaceRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/space"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/userservice"
)

// Service управление инвентарем парковочных мест.
// Чтение доступно всем, изменения - только менеджерам.
type Service struct {
	spaceRepo SpaceRepository
	users     UserProvider
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса мест
func NewService(spaceRepo SpaceRepository, users UserProvider, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		spaceRepo: spaceRepo,
		users:     users,
		txManager: txManager,
		logger:    logger,
	}
}

// Create добавляет новое место
func (s *Service) Create(ctx context.Context, actingUserID int64) (*domain.ParkingSpace, error) {
	s.logger.Info("Create: adding a parking space by user=%d", actingUserID)

	if err := s.checkManager(ctx, "Create", actingUserID); err != nil {
		return nil, err
	}

	var created *domain.ParkingSpace
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.spaceRepo.Create(txCtx)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: parking space id=%d added", created.ID)
	return created, nil
}

// GetByID получает место по ID, включая удаленные
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.ParkingSpace, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.repoError("GetByID", err)
	}
	return space, nil
}

// GetAll получает все места, включая удаленные
func (s *Service) GetAll(ctx context.Context) ([]*domain.ParkingSpace, error) {
	spaces, err := s.spaceRepo.GetAll(ctx)
	if err != nil {
		return nil, s.repoError("GetAll", err)
	}
	return spaces, nil
}

// GetAllActive получает места, доступные для бронирования
func (s *Service) GetAllActive(ctx context.Context) ([]*domain.ParkingSpace, error) {
	spaces, err := s.spaceRepo.GetAllActive(ctx)
	if err != nil {
		return nil, s.repoError("GetAllActive", err)
	}
	return spaces, nil
}

// GetByIDs получает места по списку ID
func (s *Service) GetByIDs(ctx context.Context, ids []int64) ([]*domain.ParkingSpace, error) {
	if len(ids) > domain.MaxIDsPerRequest {
		return nil, fmt.Errorf("%w: %d ids, limit %d", domain.ErrInvalidOperation, len(ids), domain.MaxIDsPerRequest)
	}

	spaces, err := s.spaceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, s.repoError("GetByIDs", err)
	}
	return spaces, nil
}

// SetDeleted помечает место удаленным или восстанавливает его.
// Бронирования удаленного места сохраняются.
func (s *Service) SetDeleted(ctx context.Context, id int64, deleted bool, actingUserID int64) (*domain.ParkingSpace, error) {
	s.logger.Info("SetDeleted: space=%d deleted=%t by user=%d", id, deleted, actingUserID)

	if err := s.checkManager(ctx, "SetDeleted", actingUserID); err != nil {
		return nil, err
	}

	var updated *domain.ParkingSpace
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.spaceRepo.SetDeleted(txCtx, id, deleted)
		return err
	})
	if err != nil {
		return nil, s.repoError("SetDeleted", err)
	}

	s.logger.Info("SetDeleted: space id=%d is now deleted=%t", id, updated.IsDeleted)
	return updated, nil
}

// Delete мягко удаляет место
func (s *Service) Delete(ctx context.Context, id int64, actingUserID int64) error {
	_, err := s.SetDeleted(ctx, id, true, actingUserID)
	return err
}

func (s *Service) checkManager(ctx context.Context, op string, userID int64) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, userID)
			return ErrUserNotFound
		}
		s.logger.Error("%s: failed to get user id=%d: %v", op, userID, err)
		return fmt.Errorf("%w: %s - get user: %v", ErrInternal, op, err)
	}
	if !user.IsManager() {
		s.logger.Warn("%s: user id=%d is not a manager", op, userID)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) repoError(op string, err error) error {
	if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
		s.logger.Warn("%s: parking space not found", op)
		return ErrSpaceNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
