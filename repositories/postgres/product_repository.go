package postgres

import (
	"context"
	"fmt"

	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/repositories"
	"go.uber.org/zap"
)

// ProductRepository implements the repositories.ProductRepository interface
type ProductRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB, logger *zap.Logger) repositories.ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves all products
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, price, amount, measurement, product_type_id, status
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Price,
			&product.Amount,
			&product.Measurement,
			&product.ProductTypeID,
			&product.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

// NameExists reports whether any product matches name case-insensitively
func (r *ProductRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE LOWER(name) = LOWER($1))`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}

	return exists, nil
}

// NameExistsExcept reports whether a product with a different id matches name
// case-insensitively
func (r *ProductRepository) NameExistsExcept(ctx context.Context, name string, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}

	return exists, nil
}

// Create persists a new product and fills in its generated ID. A missing
// product type surfaces as an invalid reference error.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, price, amount, measurement, product_type_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		product.Name,
		product.Price,
		product.Amount,
		product.Measurement,
		product.ProductTypeID,
		product.Status,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", translateError(err))
	}

	r.logger.Debug("product created", zap.Int64("id", product.ID), zap.String("name", product.Name))
	return nil
}

// Update replaces an existing product by ID
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2,
		    price = $3,
		    amount = $4,
		    measurement = $5,
		    product_type_id = $6,
		    status = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Amount,
		product.Measurement,
		product.ProductTypeID,
		product.Status,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("product updated", zap.Int64("id", product.ID))
	return nil
}

// Delete removes a product by ID
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("product deleted", zap.Int64("id", id))
	return nil
}
