package spaces

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

const (
	regular int64 = 1
	manager int64 = 2
)

func newService(t *testing.T, spaces int) *Service {
	t.Helper()
	store := memory.NewStore()
	store.AddSpaces(spaces)
	store.PutUser(domain.User{ID: regular, Type: domain.UserTypeRegular})
	store.PutUser(domain.User{ID: manager, Type: domain.UserTypeManager})
	return NewService(store.Spaces(), store.Users(), store.TxManager(), logger.NewNop())
}

func TestService_ManagerChangesInventory(t *testing.T) {
	svc := newService(t, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, manager)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	require.NoError(t, svc.Delete(ctx, 1, manager))

	active, err := svc.GetAllActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	restored, err := svc.SetDeleted(ctx, 1, false, manager)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
}

func TestService_RegularUserCannotChangeInventory(t *testing.T) {
	svc := newService(t, 1)
	ctx := context.Background()

	_, err := svc.Create(ctx, regular)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = svc.Delete(ctx, 1, regular)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Create(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)

	space, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, space.IsActive())
}

func TestService_NotFound(t *testing.T) {
	svc := newService(t, 1)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, 9, manager)
	assert.ErrorIs(t, err, ErrSpaceNotFound)

	got, err := svc.GetByIDs(ctx, []int64{1, 9})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
