package cart

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
)

// ProductChecker reports whether a product is present in persistent storage.
type ProductChecker interface {
	ProductExists(ctx context.Context, id int32) (bool, error)
}

type Service struct {
	store    port.CartStore
	products ProductChecker
	log      logrus.FieldLogger
}

func NewService(store port.CartStore, products ProductChecker, log logrus.FieldLogger) *Service {
	return &Service{
		store:    store,
		products: products,
		log:      log,
	}
}

// Add checks the product against storage before touching the cart, so an
// unknown product leaves the cart unchanged.
func (s *Service) Add(ctx context.Context, item domain.LineItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity %d must be positive: %w", item.Quantity, domain.ErrInvalidQuantity)
	}

	exists, err := s.products.ProductExists(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("products.ProductExists: %w", err)
	}
	if !exists {
		return &domain.ProductNotFoundError{ProductID: item.ProductID}
	}

	if err := s.store.Add(item); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	}).Debug("cart item added")

	return nil
}

func (s *Service) View() []domain.LineItem {
	return s.store.View()
}
