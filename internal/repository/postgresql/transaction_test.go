package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurniatex/payroll-backend-go/internal/pkg/database"
	"github.com/kurniatex/payroll-backend-go/internal/repository/postgresql"
)

func testDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func setupScratchTable(t *testing.T, db *database.DB) {
	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, "CREATE TABLE IF NOT EXISTS tx_scratch (id INT)")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), "DROP TABLE IF EXISTS tx_scratch")
	})
}

func scratchCount(t *testing.T, db *database.DB) int {
	var count int
	err := db.Pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM tx_scratch").Scan(&count)
	require.NoError(t, err)
	return count
}

func TestWithTransaction_CommitsThroughGetQuerier(t *testing.T) {
	db := testDB(t)
	setupScratchTable(t, db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		q := postgresql.GetQuerier(txCtx, db)
		_, err := q.Exec(txCtx, "INSERT INTO tx_scratch (id) VALUES (1)")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 1, scratchCount(t, db))
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := testDB(t)
	setupScratchTable(t, db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		q := postgresql.GetQuerier(txCtx, db)
		if _, err := q.Exec(txCtx, "INSERT INTO tx_scratch (id) VALUES (1)"); err != nil {
			return err
		}
		return errors.New("second step failed")
	})
	require.Error(t, err)

	assert.Equal(t, 0, scratchCount(t, db), "the insert must not survive the rollback")
}

func TestGetQuerier_FallsBackToPool(t *testing.T) {
	db := testDB(t)
	q := postgresql.GetQuerier(context.Background(), db)
	assert.Same(t, db.Pool, q)
}
