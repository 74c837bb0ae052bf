package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int32) (domain.Product, error)
	ProductExists(ctx context.Context, id int32) (bool, error)
	CreateProduct(ctx context.Context, product domain.Product) (int32, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, id int32) error
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int32) (domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (int32, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, id int32) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (int32, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}
