package space

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const tableSpaces = "parking_spaces"

var spaceColumns = []string{"id", "is_deleted", "created_at", "updated_at"}

// Repository репозиторий парковочных мест.
// Места никогда не удаляются физически, только помечаются is_deleted.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет новое активное место
func (r *Repository) Create(ctx context.Context) (*domain.ParkingSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSpaces).
		Columns("is_deleted").
		Values(false).
		Suffix("RETURNING id, is_deleted, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return space, nil
}

// GetByID получает место по ID, включая помеченные удаленными
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ParkingSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(spaceColumns...).
		From(tableSpaces).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan space: %v", ErrScanRow, err)
	}

	return space, nil
}

// GetAll получает все места, включая удаленные
func (r *Repository) GetAll(ctx context.Context) ([]*domain.ParkingSpace, error) {
	return r.list(ctx, "GetAll", psqlbuilder.Select(spaceColumns...).From(tableSpaces))
}

// GetAllActive получает места, доступные для бронирования
func (r *Repository) GetAllActive(ctx context.Context) ([]*domain.ParkingSpace, error) {
	return r.list(ctx, "GetAllActive", psqlbuilder.Select(spaceColumns...).
		From(tableSpaces).
		Where(squirrel.Eq{"is_deleted": false}))
}

// GetByIDs получает места по списку ID. Отсутствующие ID пропускаются.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.ParkingSpace, error) {
	if len(ids) == 0 {
		return []*domain.ParkingSpace{}, nil
	}
	return r.list(ctx, "GetByIDs", psqlbuilder.Select(spaceColumns...).
		From(tableSpaces).
		Where(squirrel.Eq{"id": ids}))
}

// SetDeleted помечает место удаленным или восстанавливает его
func (r *Repository) SetDeleted(ctx context.Context, id int64, deleted bool) (*domain.ParkingSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSpaces).
		Set("is_deleted", deleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, is_deleted, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SetDeleted - build update query: %v", ErrBuildQuery, err)
	}

	space, err := scanSpace(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetDeleted - execute update: %v", ErrExecQuery, err)
	}

	return space, nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.ParkingSpace, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	spaces := make([]*domain.ParkingSpace, 0)
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan space: %v", ErrScanRow, op, err)
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return spaces, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row scanner) (*domain.ParkingSpace, error) {
	var space domain.ParkingSpace
	if err := row.Scan(&space.ID, &space.IsDeleted, &space.CreatedAt, &space.UpdatedAt); err != nil {
		return nil, err
	}
	return &space, nil
}
