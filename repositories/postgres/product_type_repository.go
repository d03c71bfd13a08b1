package postgres

import (
	"context"
	"fmt"

	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/repositories"
	"go.uber.org/zap"
)

// ProductTypeRepository implements the repositories.ProductTypeRepository interface
type ProductTypeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProductTypeRepository creates a new product type repository
func NewProductTypeRepository(db *DB, logger *zap.Logger) repositories.ProductTypeRepository {
	return &ProductTypeRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves all product types
func (r *ProductTypeRepository) List(ctx context.Context) ([]*models.ProductType, error) {
	query := `
		SELECT id, name
		FROM product_types
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query product types: %w", err)
	}
	defer rows.Close()

	productTypes := make([]*models.ProductType, 0)
	for rows.Next() {
		productType := &models.ProductType{}
		if err := rows.Scan(&productType.ID, &productType.Name); err != nil {
			return nil, fmt.Errorf("failed to scan product type: %w", err)
		}
		productTypes = append(productTypes, productType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product type rows: %w", err)
	}

	return productTypes, nil
}

// NameExists reports whether any product type matches name case-insensitively
func (r *ProductTypeRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM product_types WHERE LOWER(name) = LOWER($1))`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product type name: %w", err)
	}

	return exists, nil
}

// NameExistsExcept reports whether a product type with a different id matches
// name case-insensitively
func (r *ProductTypeRepository) NameExistsExcept(ctx context.Context, name string, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM product_types WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product type name: %w", err)
	}

	return exists, nil
}

// Create persists a new product type and fills in its generated ID
func (r *ProductTypeRepository) Create(ctx context.Context, productType *models.ProductType) error {
	query := `
		INSERT INTO product_types (name)
		VALUES ($1)
		RETURNING id
	`

	if err := r.db.QueryRowContext(ctx, query, productType.Name).Scan(&productType.ID); err != nil {
		return fmt.Errorf("failed to create product type: %w", translateError(err))
	}

	r.logger.Debug("product type created", zap.Int64("id", productType.ID), zap.String("name", productType.Name))
	return nil
}

// Update replaces an existing product type by ID
func (r *ProductTypeRepository) Update(ctx context.Context, productType *models.ProductType) error {
	query := `
		UPDATE product_types
		SET name = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, productType.ID, productType.Name)
	if err != nil {
		return fmt.Errorf("failed to update product type: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product type %d: %w", productType.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("product type updated", zap.Int64("id", productType.ID))
	return nil
}

// Delete removes a product type by ID. Types still referenced by products
// surface as an invalid reference error.
func (r *ProductTypeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM product_types WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product type: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product type %d: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("product type deleted", zap.Int64("id", id))
	return nil
}
