package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/currency"
)

var ErrCacheMiss = errors.New("cache miss")

const (
	loadTimeout       = 5 * time.Second
	invalidateTimeout = time.Second
)

// Products is a cache-aside decorator over a ProductRepository. Single product
// reads are served from redis; writes go to the repository and evict the key.
// Redis failures are logged and fall through to the repository.
type Products struct {
	port.ProductRepository

	client  *redis.Client
	baseTTL time.Duration
	sfg     singleflight.Group
	log     logrus.FieldLogger
}

func NewProducts(next port.ProductRepository, client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *Products {
	return &Products{
		ProductRepository: next,
		client:            client,
		baseTTL:           ttl,
		log:               log,
	}
}

// GetProduct collapses concurrent loads of one key. The shared load is detached
// from the caller that started it, so a cancelled caller does not fail the others.
func (c *Products) GetProduct(ctx context.Context, id int32) (domain.Product, error) {
	ch := c.sfg.DoChan(cacheKey(id), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		return c.load(loadCtx, id)
	})

	select {
	case <-ctx.Done():
		return domain.Product{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Product{}, res.Err
		}
		return res.Val.(domain.Product), nil
	}
}

func (c *Products) load(ctx context.Context, id int32) (domain.Product, error) {
	product, err := c.get(ctx, id)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.log.WithError(err).WithField("product_id", id).Warn("product cache get failed")
	}

	product, err = c.ProductRepository.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if err := c.set(ctx, product); err != nil {
		c.log.WithError(err).WithField("product_id", id).Warn("product cache set failed")
	}

	return product, nil
}

func (c *Products) UpdateProduct(ctx context.Context, product domain.Product) error {
	if err := c.ProductRepository.UpdateProduct(ctx, product); err != nil {
		return err
	}

	c.Invalidate(ctx, product.ID)
	return nil
}

func (c *Products) DeleteProduct(ctx context.Context, id int32) error {
	if err := c.ProductRepository.DeleteProduct(ctx, id); err != nil {
		return err
	}

	c.Invalidate(ctx, id)
	return nil
}

// Invalidate evicts the given products. It is also wired as the checkout commit
// hook, since a committed sale changes stock.
func (c *Products) Invalidate(ctx context.Context, ids ...int32) {
	if len(ids) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, cacheKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.WithError(err).WithField("product_ids", ids).Warn("product cache invalidate failed")
	}
}

func (c *Products) get(ctx context.Context, id int32) (domain.Product, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Product{}, ErrCacheMiss
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("redis get failed: %w", err)
	}

	var entry productEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.Product{}, fmt.Errorf("unmarshal product failed: %w", err)
	}

	return entry.toDomain()
}

func (c *Products) set(ctx context.Context, product domain.Product) error {
	data, err := json.Marshal(newProductEntry(product))
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	jitter := time.Duration(rand.Int63n(int64(c.baseTTL/4) + 1))
	if err := c.client.Set(ctx, cacheKey(product.ID), data, c.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func cacheKey(id int32) string {
	return "product:" + strconv.FormatInt(int64(id), 10)
}

type productEntry struct {
	ID           int32           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Stock        int32           `json:"stock"`
	CategoryID   int32           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func newProductEntry(p domain.Product) productEntry {
	return productEntry{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price.Amount,
		Currency:     p.Price.Currency.String(),
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (e productEntry) toDomain() (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(e.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", e.Currency, err)
	}

	return domain.Product{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Price:        domain.Money{Amount: e.Price, Currency: parsedCurrency},
		Stock:        e.Stock,
		CategoryID:   e.CategoryID,
		CategoryName: e.CategoryName,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}
