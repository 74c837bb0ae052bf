package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

type inventoryLedger struct {
	pool *pgxpool.Pool
}

func NewInventoryLedger(pool *pgxpool.Pool) port.InventoryLedger {
	return &inventoryLedger{pool: pool}
}

func (l *inventoryLedger) Begin(ctx context.Context) (port.LedgerTx, error) {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("pool.Begin: %w", err)
	}

	return &ledgerTx{
		tx: tx,
		q:  db.New(tx),
	}, nil
}

type ledgerTx struct {
	tx pgx.Tx
	q  *db.Queries
}

func (t *ledgerTx) LockProduct(ctx context.Context, productID int32) (domain.Product, error) {
	row, err := t.q.GetProductForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, &domain.ProductNotFoundError{ProductID: productID}
		}
		return domain.Product{}, fmt.Errorf("q.GetProductForUpdate: %w", err)
	}

	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	return domain.Product{
		ID:         row.ID,
		Name:       row.Name,
		Price:      domain.Money{Amount: row.Price, Currency: parsedCurrency},
		Stock:      row.Stock,
		CategoryID: row.CategoryID,
	}, nil
}

func (t *ledgerTx) SetStock(ctx context.Context, productID int32, stock int32) error {
	rowsAffected, err := t.q.UpdateProductStock(ctx, db.UpdateProductStockParams{
		ID:    productID,
		Stock: stock,
	})
	if err != nil {
		if isPgError(err, codeCheckViolation) {
			return fmt.Errorf("product[%d] stock %d: %w", productID, stock, domain.ErrInsufficientStock)
		}
		return fmt.Errorf("q.UpdateProductStock: %w", err)
	}

	if rowsAffected == 0 {
		return &domain.ProductNotFoundError{ProductID: productID}
	}

	return nil
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	return rollback(ctx, t.tx)
}
