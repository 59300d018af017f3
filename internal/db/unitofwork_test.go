package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/compass/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertCustomer(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO customers (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).Format(time.RFC3339))
	return err
}

func customerName(t *testing.T, uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	t.Helper()
	var name string
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := tx.QueryRowContext(ctx, `SELECT name FROM customers WHERE id = ?`, id).Scan(&name); err == nil {
			found = true
		}
		return nil
	})
	require.NoError(t, err)
	return name, found
}

func TestWithinTx_CommitsCustomer(t *testing.T) {
	uow := newStore(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertCustomer(ctx, tx, "cust-1", "Acme Corp")
	})
	require.NoError(t, err)

	name, found := customerName(t, uow, "cust-1")
	assert.True(t, found)
	assert.Equal(t, "Acme Corp", name)
}

func TestWithinTx_SecondInsertFailureRollsBackFirst(t *testing.T) {
	uow := newStore(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertCustomer(ctx, tx, "cust-1", "Acme Corp"); err != nil {
			return err
		}
		return insertCustomer(ctx, tx, "cust-1", "Duplicate")
	})
	require.Error(t, err)

	_, found := customerName(t, uow, "cust-1")
	assert.False(t, found)
}

func TestWithinTx_ReturnsCallbackErrorUnchanged(t *testing.T) {
	uow := newStore(t)
	rejected := errors.New("seed rejected")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		require.NoError(t, insertCustomer(ctx, tx, "cust-2", "Globex"))
		return rejected
	})

	assert.ErrorIs(t, err, rejected)
	_, found := customerName(t, uow, "cust-2")
	assert.False(t, found)
}

func TestWithinTx_PanicRollsBackAndPropagates(t *testing.T) {
	uow := newStore(t)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertCustomer(ctx, tx, "cust-3", "Initech")
			panic("boom")
		})
	})

	_, found := customerName(t, uow, "cust-3")
	assert.False(t, found)
}

func TestWithinTx_CancelledContextSkipsCallback(t *testing.T) {
	uow := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}
