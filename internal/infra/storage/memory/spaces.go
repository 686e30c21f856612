package memory

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/space"
)

// SpaceStore хранилище парковочных мест
type SpaceStore struct {
	store *Store
}

func (r *SpaceStore) Create(ctx context.Context) (*domain.ParkingSpace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertSpaceLocked(), nil
}

func (r *SpaceStore) GetByID(ctx context.Context, id int64) (*domain.ParkingSpace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.spaces[id]
	if !ok {
		return nil, space.ErrSpaceNotFound
	}
	return &sp, nil
}

func (r *SpaceStore) GetAll(ctx context.Context) ([]*domain.ParkingSpace, error) {
	return r.list(ctx, func(*domain.ParkingSpace) bool { return true })
}

func (r *SpaceStore) GetAllActive(ctx context.Context) ([]*domain.ParkingSpace, error) {
	return r.list(ctx, (*domain.ParkingSpace).IsActive)
}

func (r *SpaceStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.ParkingSpace, error) {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.list(ctx, func(sp *domain.ParkingSpace) bool {
		_, ok := wanted[sp.ID]
		return ok
	})
}

func (r *SpaceStore) SetDeleted(ctx context.Context, id int64, deleted bool) (*domain.ParkingSpace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.spaces[id]
	if !ok {
		return nil, space.ErrSpaceNotFound
	}
	sp.IsDeleted = deleted
	sp.UpdatedAt = s.now()
	s.spaces[id] = sp

	return &sp, nil
}

func (r *SpaceStore) list(ctx context.Context, keep func(*domain.ParkingSpace) bool) ([]*domain.ParkingSpace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ParkingSpace, 0, len(s.spaces))
	for _, sp := range s.spaces {
		sp := sp
		if keep(&sp) {
			result = append(result, &sp)
		}
	}
	domain.SortSpacesByID(result)
	return result, nil
}
