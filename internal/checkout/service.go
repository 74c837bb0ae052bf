// Package checkout turns the pending cart into committed stock decrements and a
// sale total. A checkout either decrements stock for every line item and commits,
// or rolls back and decrements nothing.
package checkout

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sirupsen/logrus"
)

// Terminal states of a checkout, used as log field and metric label.
const (
	OutcomeCommitted  = "committed"
	OutcomeAborted    = "aborted"
	OutcomeRolledBack = "rolled_back"
	OutcomeFailed     = "failed"
	OutcomeTimeout    = "timeout"
)

type Service struct {
	cart   port.CartStore
	ledger port.InventoryLedger

	timeout  time.Duration
	restore  bool
	onCommit func(ctx context.Context, productIDs []int32)

	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

type Option func(*Service)

// WithTimeout bounds a whole checkout. On expiry the open transaction is rolled
// back and the checkout fails with domain.ErrCheckoutTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithRestoreOnFailure puts drained items back into the cart when a checkout
// fails after draining. By default they are dropped.
func WithRestoreOnFailure() Option {
	return func(s *Service) {
		s.restore = true
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// OnCommit registers fn to run after a successful commit with the ids of the
// products whose stock changed.
func OnCommit(fn func(ctx context.Context, productIDs []int32)) Option {
	return func(s *Service) {
		s.onCommit = fn
	}
}

func New(cart port.CartStore, ledger port.InventoryLedger, opts ...Option) *Service {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Service{
		cart:   cart,
		ledger: ledger,
		log:    discard,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Checkout(ctx context.Context) (domain.SaleResult, error) {
	start := time.Now()

	result, items, err := s.checkout(ctx)

	outcome := Outcome(err)
	elapsed := time.Since(start)
	s.metrics.ObserveCheckout(outcome, elapsed)

	entry := s.log.WithFields(logrus.Fields{
		"outcome":     outcome,
		"items":       items,
		"duration_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		if productID, ok := failedProduct(err); ok {
			entry = entry.WithField("product_id", productID)
		}
		entry.WithError(err).Warn("checkout failed")
		return domain.SaleResult{}, err
	}
	entry.WithField("total", result.Total.String()).Info("checkout committed")

	return result, nil
}

func (s *Service) checkout(ctx context.Context) (_ domain.SaleResult, _ int, err error) {
	items := s.cart.DrainAll()
	if len(items) == 0 {
		return domain.SaleResult{}, 0, domain.ErrEmptyCart
	}

	if s.restore {
		defer func() {
			if err != nil {
				if rsErr := s.cart.Restore(items); rsErr != nil {
					s.log.WithError(rsErr).Warn("cart restore dropped items")
				}
			}
		}()
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tx, err := s.ledger.Begin(ctx)
	if err != nil {
		return domain.SaleResult{}, len(items), infraError(ctx, domain.ErrTxStart, err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
	}()

	total, err := s.apply(ctx, tx, lockOrder(items))
	if err != nil {
		return domain.SaleResult{}, len(items), err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.SaleResult{}, len(items), infraError(ctx, domain.ErrTxCommit, err)
	}

	if s.onCommit != nil {
		productIDs := make([]int32, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}
		s.onCommit(ctx, productIDs)
	}

	return domain.SaleResult{
		Total:   total,
		Message: domain.SaleProcessedMessage,
	}, len(items), nil
}

// apply locks, checks and decrements every item in order, accumulating the total.
func (s *Service) apply(ctx context.Context, tx port.LedgerTx, items []domain.LineItem) (domain.Money, error) {
	var total domain.Money

	for i, item := range items {
		if item.Quantity <= 0 {
			return domain.Money{}, fmt.Errorf("product[%d] quantity %d: %w", item.ProductID, item.Quantity, domain.ErrInvalidQuantity)
		}

		product, err := tx.LockProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return domain.Money{}, err
			}
			return domain.Money{}, infraError(ctx, domain.ErrInventoryRead, err)
		}

		if product.Stock < item.Quantity {
			return domain.Money{}, &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}

		subtotal := product.Price.Mul(item.Quantity)
		if i == 0 {
			total = domain.ZeroMoney(subtotal.Currency)
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return domain.Money{}, fmt.Errorf("product[%d]: %w", item.ProductID, err)
		}

		if err := tx.SetStock(ctx, item.ProductID, product.Stock-item.Quantity); err != nil {
			return domain.Money{}, infraError(ctx, domain.ErrStockUpdate, err)
		}

		s.log.WithFields(logrus.Fields{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"stock":      product.Stock - item.Quantity,
		}).Debug("stock decremented")
	}

	return total, nil
}

// lockOrder sorts by product id so that concurrent checkouts over overlapping
// products acquire row locks in the same order.
func lockOrder(items []domain.LineItem) []domain.LineItem {
	ordered := slices.Clone(items)
	slices.SortFunc(ordered, func(a, b domain.LineItem) int {
		return cmp.Compare(a.ProductID, b.ProductID)
	})

	return ordered
}

func infraError(ctx context.Context, kind, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrCheckoutTimeout, err)
	}

	return fmt.Errorf("%w: %w", kind, err)
}

func failedProduct(err error) (int32, bool) {
	var notFound *domain.ProductNotFoundError
	if errors.As(err, &notFound) {
		return notFound.ProductID, true
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr.ProductID, true
	}

	return 0, false
}

// Outcome classifies a Checkout error into its terminal state.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, domain.ErrEmptyCart):
		return OutcomeAborted
	case errors.Is(err, domain.ErrCheckoutTimeout):
		return OutcomeTimeout
	case errors.Is(err, domain.ErrTxStart), errors.Is(err, domain.ErrTxCommit):
		return OutcomeFailed
	default:
		return OutcomeRolledBack
	}
}
