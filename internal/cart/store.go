package cart

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Store is the process-wide cart. It holds at most one line item per product.
// Add, DrainAll and Restore take the write lock, View takes the read lock.
type Store struct {
	mu    sync.RWMutex
	items []domain.LineItem
}

var _ port.CartStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{}
}

// Add merges item into the cart, summing quantities for a known product.
// A non-positive quantity or a sum that does not fit int32 leaves the cart unchanged.
func (s *Store) Add(item domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.merge(item)
}

func (s *Store) View() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

// DrainAll empties the cart and returns what it held.
func (s *Store) DrainAll() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items
	s.items = nil

	return items
}

// Restore puts drained items back, merging with anything added in the meantime.
// Items that cannot be merged are dropped and reported in the returned error.
func (s *Store) Restore(items []domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, item := range items {
		if err := s.merge(item); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Store) merge(item domain.LineItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("product[%d] quantity %d: %w", item.ProductID, item.Quantity, domain.ErrInvalidQuantity)
	}

	for i := range s.items {
		if s.items[i].ProductID != item.ProductID {
			continue
		}

		sum := int64(s.items[i].Quantity) + int64(item.Quantity)
		if sum > math.MaxInt32 {
			return fmt.Errorf("product[%d] quantity %d exceeds %d: %w",
				item.ProductID, sum, math.MaxInt32, domain.ErrInvalidQuantity)
		}
		s.items[i].Quantity = int32(sum)
		return nil
	}

	s.items = append(s.items, item)
	return nil
}
