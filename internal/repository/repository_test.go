package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../../migrations/000001_init.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func truncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(t.Context(), "TRUNCATE TABLE products, categories, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

// seedCategory inserts a session with one sub-category and returns the sub-category id.
func seedCategory(t *testing.T, pool *pgxpool.Pool) int32 {
	t.Helper()
	ctx := t.Context()

	repo := repository.NewCategory(pool)

	sessionID, err := repo.CreateCategory(ctx, domain.NewSession(gofakeit.ProductCategory()))
	require.NoError(t, err)

	categoryID, err := repo.CreateCategory(ctx, domain.NewSubCategory(gofakeit.ProductCategory(), sessionID))
	require.NoError(t, err)

	return categoryID
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, price string, stock int32) int32 {
	t.Helper()

	product := randomProduct(seedCategory(t, pool))
	product.Price = domain.Money{Amount: decimal.RequireFromString(price), Currency: currency.BRL}
	product.Stock = stock

	id, err := repository.NewProduct(pool).CreateProduct(t.Context(), product)
	require.NoError(t, err)

	return id
}

func stockOf(t *testing.T, pool *pgxpool.Pool, productID int32) int32 {
	t.Helper()

	var stock int32
	err := pool.QueryRow(t.Context(), "SELECT stock FROM products WHERE id = $1", productID).Scan(&stock)
	require.NoError(t, err)

	return stock
}

func randomProduct(categoryID int32) domain.Product {
	return domain.Product{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       randomMoney(),
		Stock:       int32(gofakeit.IntRange(0, 500)),
		CategoryID:  categoryID,
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: randomCurrency(),
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "ID", "CategoryName", "UpdatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.NotEmpty(t, actual.CategoryName)
	assert.False(t, actual.UpdatedAt.IsZero())
}
