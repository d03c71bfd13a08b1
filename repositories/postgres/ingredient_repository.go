package postgres

import (
	"context"
	"fmt"

	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/repositories"
	"go.uber.org/zap"
)

// IngredientRepository implements the repositories.IngredientRepository interface
type IngredientRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *DB, logger *zap.Logger) repositories.IngredientRepository {
	return &IngredientRepository{
		db:     db,
		logger: logger,
	}
}

// List retrieves all ingredient records
func (r *IngredientRepository) List(ctx context.Context) ([]*models.Ingredient, error) {
	query := `
		SELECT id, name, amount, measurement, best_before_date, expiration_date, status
		FROM ingredients
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]*models.Ingredient, 0)
	for rows.Next() {
		ingredient := &models.Ingredient{}
		err := rows.Scan(
			&ingredient.ID,
			&ingredient.Name,
			&ingredient.Amount,
			&ingredient.Measurement,
			&ingredient.BestBeforeDate,
			&ingredient.ExpirationDate,
			&ingredient.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredient rows: %w", err)
	}

	return ingredients, nil
}

// NameExists reports whether any ingredient matches name case-insensitively
func (r *IngredientRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ingredients WHERE LOWER(name) = LOWER($1))`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ingredient name: %w", err)
	}

	return exists, nil
}

// NameExistsExcept reports whether an ingredient with a different id matches
// name case-insensitively
func (r *IngredientRepository) NameExistsExcept(ctx context.Context, name string, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ingredients WHERE LOWER(name) = LOWER($1) AND id <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ingredient name: %w", err)
	}

	return exists, nil
}

// Create persists a new ingredient and fills in its generated ID
func (r *IngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	query := `
		INSERT INTO ingredients (name, amount, measurement, best_before_date, expiration_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		ingredient.Name,
		ingredient.Amount,
		ingredient.Measurement,
		ingredient.BestBeforeDate,
		ingredient.ExpirationDate,
		ingredient.Status,
	).Scan(&ingredient.ID)

	if err != nil {
		return fmt.Errorf("failed to create ingredient: %w", translateError(err))
	}

	r.logger.Debug("ingredient created", zap.Int64("id", ingredient.ID), zap.String("name", ingredient.Name))
	return nil
}

// Update replaces an existing ingredient by ID
func (r *IngredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2,
		    amount = $3,
		    measurement = $4,
		    best_before_date = $5,
		    expiration_date = $6,
		    status = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		ingredient.ID,
		ingredient.Name,
		ingredient.Amount,
		ingredient.Measurement,
		ingredient.BestBeforeDate,
		ingredient.ExpirationDate,
		ingredient.Status,
	)

	if err != nil {
		return fmt.Errorf("failed to update ingredient: %w", translateError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("ingredient %d: %w", ingredient.ID, repositories.ErrNotFound)
	}

	r.logger.Debug("ingredient updated", zap.Int64("id", ingredient.ID))
	return nil
}

// Delete removes an ingredient by ID
func (r *IngredientRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM ingredients WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("ingredient %d: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("ingredient deleted", zap.Int64("id", id))
	return nil
}
