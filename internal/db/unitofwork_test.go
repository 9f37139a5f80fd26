package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoplan/renoplan/internal/db"
	"github.com/renoplan/renoplan/internal/testutil"
)

func countProjects(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM projects`).Scan(&n))
	return n
}

func insertProject(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, unit_label, created_at, updated_at)
		 VALUES (?, ?, '', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		id, "p-"+id)
	return err
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertProject(ctx, tx, "one")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countProjects(t, database))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertProject(ctx, tx, "one"); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, countProjects(t, database))
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			if err := insertProject(ctx, tx, "one"); err != nil {
				return err
			}
			panic("mid-transaction panic")
		})
	})
	assert.Equal(t, 0, countProjects(t, database))
}
