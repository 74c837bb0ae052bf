package domain_test

import (
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFromParent(t *testing.T) {
	session := domain.CategoryFromParent(1, "Eletrônicos", nil)
	assert.Equal(t, domain.KindSession, session.Kind)
	assert.Nil(t, session.ParentRef())

	_, ok := session.Parent()
	assert.False(t, ok)

	parentID := int32(1)
	sub := domain.CategoryFromParent(2, "Celulares", &parentID)
	assert.Equal(t, domain.KindSubCategory, sub.Kind)

	got, ok := sub.Parent()
	require.True(t, ok)
	assert.Equal(t, parentID, got)
	assert.Equal(t, "category", sub.Kind.String())
}

func TestCategoryValidate(t *testing.T) {
	tests := []struct {
		name      string
		category  domain.Category
		wantError error
	}{
		{
			name:     "session: ok",
			category: domain.NewSession("Casa"),
		},
		{
			name:     "sub-category: ok",
			category: domain.NewSubCategory("Cozinha", 1),
		},
		{
			name:      "empty name: error",
			category:  domain.NewSession(""),
			wantError: domain.ErrInvalidCategory,
		},
		{
			name:      "non-positive parent: error",
			category:  domain.NewSubCategory("Cozinha", 0),
			wantError: domain.ErrInvalidCategory,
		},
		{
			name: "own parent: error",
			category: func() domain.Category {
				c := domain.NewSubCategory("Loop", 5)
				c.ID = 5
				return c
			}(),
			wantError: domain.ErrInvalidParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestErrorsUnwrapToKinds(t *testing.T) {
	notFound := &domain.ProductNotFoundError{ProductID: 9}
	assert.ErrorIs(t, notFound, domain.ErrProductNotFound)
	assert.EqualError(t, notFound, "product[9] not found")

	stock := &domain.InsufficientStockError{ProductID: 9, Available: 1, Requested: 2}
	assert.ErrorIs(t, stock, domain.ErrInsufficientStock)

	validation := &domain.ValidationError{Kind: domain.ErrInvalidProduct, Reason: "name is empty"}
	assert.ErrorIs(t, validation, domain.ErrInvalidProduct)
	assert.EqualError(t, validation, "invalid product: name is empty")
}
