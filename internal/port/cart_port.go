package port

import (
	"github.com/nikolayk812/storefront/internal/domain"
)

// CartStore holds pending line items for the whole process.
type CartStore interface {
	Add(item domain.LineItem) error
	View() []domain.LineItem
	DrainAll() []domain.LineItem
	Restore(items []domain.LineItem) error
}
