package repositories

import (
	"context"

	"github.com/upb/ims-inventory/backend/models"
)

// IngredientRepository handles ingredient stock record operations
type IngredientRepository interface {
	// List retrieves all ingredient records
	List(ctx context.Context) ([]*models.Ingredient, error)

	// NameExists reports whether any ingredient matches name case-insensitively
	NameExists(ctx context.Context, name string) (bool, error)

	// NameExistsExcept reports whether an ingredient with a different id
	// matches name case-insensitively
	NameExistsExcept(ctx context.Context, name string, id int64) (bool, error)

	// Create persists a new ingredient and fills in its generated ID
	Create(ctx context.Context, ingredient *models.Ingredient) error

	// Update replaces an existing ingredient by ID
	Update(ctx context.Context, ingredient *models.Ingredient) error

	// Delete removes an ingredient by ID
	Delete(ctx context.Context, id int64) error
}

// ProductTypeRepository handles product category operations
type ProductTypeRepository interface {
	// List retrieves all product types
	List(ctx context.Context) ([]*models.ProductType, error)

	// NameExists reports whether any product type matches name case-insensitively
	NameExists(ctx context.Context, name string) (bool, error)

	// NameExistsExcept reports whether a product type with a different id
	// matches name case-insensitively
	NameExistsExcept(ctx context.Context, name string, id int64) (bool, error)

	// Create persists a new product type and fills in its generated ID
	Create(ctx context.Context, productType *models.ProductType) error

	// Update replaces an existing product type by ID
	Update(ctx context.Context, productType *models.ProductType) error

	// Delete removes a product type by ID
	Delete(ctx context.Context, id int64) error
}

// ProductRepository handles catalog product operations
type ProductRepository interface {
	// List retrieves all products
	List(ctx context.Context) ([]*models.Product, error)

	// NameExists reports whether any product matches name case-insensitively
	NameExists(ctx context.Context, name string) (bool, error)

	// NameExistsExcept reports whether a product with a different id matches
	// name case-insensitively
	NameExistsExcept(ctx context.Context, name string, id int64) (bool, error)

	// Create persists a new product and fills in its generated ID
	Create(ctx context.Context, product *models.Product) error

	// Update replaces an existing product by ID
	Update(ctx context.Context, product *models.Product) error

	// Delete removes a product by ID
	Delete(ctx context.Context, id int64) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Ingredients  IngredientRepository
	ProductTypes ProductTypeRepository
	Products     ProductRepository
}
