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
)

type categoryRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCategory(pool *pgxpool.Pool) port.CategoryRepository {
	return &categoryRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCategoryWithTx(tx pgx.Tx) port.CategoryRepository {
	return &categoryRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListCategories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.CategoryFromParent(row.ID, row.Name, row.ParentID))
	}

	return categories, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id int32) (domain.Category, error) {
	row, err := r.q.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Category{}, categoryNotFound(id)
		}
		return domain.Category{}, fmt.Errorf("q.GetCategory: %w", err)
	}

	return domain.CategoryFromParent(row.ID, row.Name, row.ParentID), nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category domain.Category) (int32, error) {
	if err := category.Validate(); err != nil {
		return 0, err
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (int32, error) {
		if parentID, ok := category.Parent(); ok {
			if err := lockSessionParent(ctx, q, parentID); err != nil {
				return 0, err
			}
		}

		id, err := q.CreateCategory(ctx, db.CreateCategoryParams{
			Name:     category.Name,
			ParentID: category.ParentRef(),
		})
		if err != nil {
			return 0, fmt.Errorf("q.CreateCategory: %w", err)
		}

		return id, nil
	})
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if _, err := q.GetCategoryForUpdate(ctx, category.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return struct{}{}, categoryNotFound(category.ID)
			}
			return struct{}{}, fmt.Errorf("q.GetCategoryForUpdate: %w", err)
		}

		if parentID, ok := category.Parent(); ok {
			if err := lockSessionParent(ctx, q, parentID); err != nil {
				return struct{}{}, err
			}

			children, err := q.CountChildCategories(ctx, &category.ID)
			if err != nil {
				return struct{}{}, fmt.Errorf("q.CountChildCategories: %w", err)
			}
			if children > 0 {
				return struct{}{}, &domain.ValidationError{
					Kind:   domain.ErrInvalidParent,
					Reason: fmt.Sprintf("category[%d] has %d children", category.ID, children),
				}
			}
		}

		if _, err := q.UpdateCategory(ctx, db.UpdateCategoryParams{
			ID:       category.ID,
			Name:     category.Name,
			ParentID: category.ParentRef(),
		}); err != nil {
			return struct{}{}, fmt.Errorf("q.UpdateCategory: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id int32) error {
	rowsAffected, err := r.q.DeleteCategory(ctx, id)
	if err != nil {
		if isPgError(err, codeForeignKeyViolation) {
			return fmt.Errorf("category[%d]: %w", id, domain.ErrCategoryInUse)
		}
		return fmt.Errorf("q.DeleteCategory: %w", err)
	}

	if rowsAffected == 0 {
		return categoryNotFound(id)
	}

	return nil
}

// lockSessionParent locks the parent row until the transaction ends so it cannot
// turn into a sub-category while a child is being attached to it.
func lockSessionParent(ctx context.Context, q *db.Queries, parentID int32) error {
	parent, err := q.GetCategoryForUpdate(ctx, parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ValidationError{
				Kind:   domain.ErrCategoryNotFound,
				Reason: fmt.Sprintf("parent category[%d] does not exist", parentID),
			}
		}
		return fmt.Errorf("q.GetCategoryForUpdate: %w", err)
	}

	if parent.ParentID != nil {
		return &domain.ValidationError{
			Kind:   domain.ErrInvalidParent,
			Reason: fmt.Sprintf("category[%d] is not a session", parentID),
		}
	}

	return nil
}

func categoryNotFound(id int32) error {
	return fmt.Errorf("category[%d]: %w", id, domain.ErrCategoryNotFound)
}
