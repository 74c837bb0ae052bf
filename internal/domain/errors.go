package domain

import (
	"errors"
	"fmt"
)

// Caller errors.
var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrCurrencyMismatch  = errors.New("currency mismatch")

	ErrInvalidProduct   = errors.New("invalid product")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidParent    = errors.New("parent must be a top-level session")
	ErrCategoryInUse    = errors.New("category is in use")

	ErrInvalidUser        = errors.New("invalid user")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Infrastructure errors. They wrap the underlying cause.
var (
	ErrTxStart         = errors.New("transaction start failed")
	ErrTxCommit        = errors.New("transaction commit failed")
	ErrStockUpdate     = errors.New("stock update failed")
	ErrInventoryRead   = errors.New("inventory read failed")
	ErrCheckoutTimeout = errors.New("checkout timed out")
)

type ProductNotFoundError struct {
	ProductID int32
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product[%d] not found", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}

type InsufficientStockError struct {
	ProductID int32
	Available int32
	Requested int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product[%d]: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ValidationError carries the reason a request was rejected together with its kind.
type ValidationError struct {
	Kind   error
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Kind.Error() + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}
