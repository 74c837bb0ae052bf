package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// InventoryLedger opens transactions over product stock.
type InventoryLedger interface {
	Begin(ctx context.Context) (LedgerTx, error)
}

// LedgerTx is a single database transaction. Rows returned by LockProduct stay
// locked until Commit or Rollback.
type LedgerTx interface {
	// LockProduct returns *domain.ProductNotFoundError when the row does not exist.
	LockProduct(ctx context.Context, productID int32) (domain.Product, error)
	SetStock(ctx context.Context, productID int32, stock int32) error
	Commit(ctx context.Context) error
	// Rollback is a no-op after Commit.
	Rollback(ctx context.Context) error
}
