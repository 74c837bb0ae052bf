package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prices are stored as NUMERIC(12, 2).
const priceScale = 2

var maxPrice = decimal.New(1, 10)

type Product struct {
	ID           int32
	Name         string
	Description  string
	Price        Money
	Stock        int32
	CategoryID   int32
	CategoryName string

	UpdatedAt time.Time
}

// Validate checks the fields a caller controls on create and update.
func (p Product) Validate() error {
	switch {
	case p.Name == "":
		return invalidProduct("name is empty")
	case p.Price.Amount.IsNegative():
		return invalidProduct("price is negative")
	case !p.Price.Amount.Equal(p.Price.Amount.Truncate(priceScale)):
		return invalidProduct("price has more than 2 decimal places")
	case p.Price.Amount.GreaterThanOrEqual(maxPrice):
		return invalidProduct("price must be below 10000000000")
	case p.Stock < 0:
		return invalidProduct("stock is negative")
	case p.CategoryID <= 0:
		return invalidProduct("category_id is not set")
	}

	return nil
}

func invalidProduct(reason string) error {
	return &ValidationError{Kind: ErrInvalidProduct, Reason: reason}
}
