package dbmetrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu         sync.Mutex
	operations []string
	failed     int
}

func (o *recordingObserver) ObserveDBQuery(operation string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.operations = append(o.operations, operation)
	if err != nil {
		o.failed++
	}
}

func (o *recordingObserver) SetPoolStats(int, int, int) {}

func TestDB_ObservesQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	obs := &recordingObserver{}
	db := Wrap(sqlDB, obs)

	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM parking_spaces").WillReturnError(errors.New("boom"))

	_, err = db.ExecContext(context.Background(), "DELETE FROM bookings WHERE id = $1", 1)
	require.NoError(t, err)
	_, err = db.QueryContext(context.Background(), "SELECT id FROM parking_spaces")
	require.Error(t, err)

	assert.Equal(t, []string{"delete", "select"}, obs.operations)
	assert.Equal(t, 1, obs.failed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db := Wrap(sqlDB, nil)

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("  SELECT * FROM bookings"))
	assert.Equal(t, "insert", operationOf("INSERT INTO bookings"))
	assert.Equal(t, "unknown", operationOf(""))
}
