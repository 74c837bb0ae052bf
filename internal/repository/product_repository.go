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

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q: db.New(tx),
	}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductRowToDomain(db.GetProductRow(row))
		if err != nil {
			return nil, fmt.Errorf("mapProductRowToDomain: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id int32) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, &domain.ProductNotFoundError{ProductID: id}
		}
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	product, err := mapProductRowToDomain(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductRowToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) ProductExists(ctx context.Context, id int32) (bool, error) {
	exists, err := r.q.ProductExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("q.ProductExists: %w", err)
	}

	return exists, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (int32, error) {
	if err := product.Validate(); err != nil {
		return 0, err
	}

	id, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.Amount,
		Currency:    product.Price.Currency.String(),
		Stock:       product.Stock,
		CategoryID:  product.CategoryID,
	})
	if err != nil {
		if isPgError(err, codeForeignKeyViolation) {
			return 0, unknownCategory(product.CategoryID)
		}
		return 0, fmt.Errorf("q.CreateProduct: %w", err)
	}

	return id, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	rowsAffected, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.Amount,
		Currency:    product.Price.Currency.String(),
		Stock:       product.Stock,
		CategoryID:  product.CategoryID,
	})
	if err != nil {
		if isPgError(err, codeForeignKeyViolation) {
			return unknownCategory(product.CategoryID)
		}
		return fmt.Errorf("q.UpdateProduct: %w", err)
	}

	if rowsAffected == 0 {
		return &domain.ProductNotFoundError{ProductID: product.ID}
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int32) error {
	rowsAffected, err := r.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("q.DeleteProduct: %w", err)
	}

	if rowsAffected == 0 {
		return &domain.ProductNotFoundError{ProductID: id}
	}

	return nil
}

func mapProductRowToDomain(row db.GetProductRow) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	return domain.Product{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		Price:        domain.Money{Amount: row.Price, Currency: parsedCurrency},
		Stock:        row.Stock,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func unknownCategory(id int32) error {
	return &domain.ValidationError{
		Kind:   domain.ErrCategoryNotFound,
		Reason: fmt.Sprintf("category[%d] does not exist", id),
	}
}
