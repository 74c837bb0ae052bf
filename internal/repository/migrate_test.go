package repository_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func TestMigrateUpAndDown(t *testing.T) {
	ctx := t.Context()

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", postgres.BasicWaitStrategies())
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	tableCount := func() int {
		var n int
		err := pool.QueryRow(ctx, `SELECT count(*) FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name IN ('categories', 'products', 'users')`).Scan(&n)
		require.NoError(t, err)
		return n
	}

	require.NoError(t, repository.Migrate(connStr, true))
	assert.Equal(t, 3, tableCount())

	// applying again is a no-op
	require.NoError(t, repository.Migrate(connStr, true))

	require.NoError(t, repository.Migrate(connStr, false))
	assert.Equal(t, 0, tableCount())
}
