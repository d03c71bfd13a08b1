package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/repositories"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return &DB{DB: sqlDB, logger: zap.NewNop()}, mock
}

func ingredientColumns() []string {
	return []string{"id", "name", "amount", "measurement", "best_before_date", "expiration_date", "status"}
}

func TestIngredientRepositoryList(t *testing.T) {
	t.Run("returns all rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		bestBefore := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		expiration := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(ingredientColumns()).
			AddRow(1, "Flour", 12.5, "kg", bestBefore, expiration, "Available").
			AddRow(2, "Salt", 30.0, "g", bestBefore, expiration, "Low Stock")

		mock.ExpectQuery("SELECT id, name, amount, measurement, best_before_date, expiration_date, status").
			WillReturnRows(rows)

		ingredients, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, ingredients, 2)

		assert.Equal(t, int64(1), ingredients[0].ID)
		assert.Equal(t, "Flour", ingredients[0].Name)
		assert.Equal(t, "kg", ingredients[0].Measurement)
		assert.Equal(t, "2026-09-01", ingredients[0].BestBeforeDate.String())
		assert.Equal(t, "Low Stock", ingredients[1].Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT id, name, amount, measurement").
			WillReturnRows(sqlmock.NewRows(ingredientColumns()))

		ingredients, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, ingredients)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT id, name, amount, measurement").
			WillReturnError(assert.AnError)

		_, err := repo.List(context.Background())
		assert.Error(t, err)
	})
}

func TestIngredientRepositoryNameExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db, zap.NewNop())

	t.Run("name taken", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("Flour").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.NameExists(context.Background(), "Flour")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("name free", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("Sugar").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.NameExists(context.Background(), "Sugar")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("excluding own id", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("Flour", int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.NameExistsExcept(context.Background(), "Flour", 7)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestIngredientRepositoryCreate(t *testing.T) {
	bestBefore := models.NewDate(2026, time.September, 1)
	expiration := models.NewDate(2026, time.September, 15)

	ingredient := &models.Ingredient{
		Name:           "Flour",
		Amount:         12.5,
		Measurement:    "kg",
		BestBeforeDate: bestBefore,
		ExpirationDate: expiration,
		Status:         "Available",
	}

	t.Run("assigns generated id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectQuery("INSERT INTO ingredients").
			WithArgs("Flour", 12.5, "kg", bestBefore, expiration, "Available").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		created := *ingredient
		err := repo.Create(context.Background(), &created)
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name is translated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectQuery("INSERT INTO ingredients").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_ingredients_name_lower"})

		created := *ingredient
		err := repo.Create(context.Background(), &created)
		assert.ErrorIs(t, err, repositories.ErrDuplicateName)
	})
}

func TestIngredientRepositoryUpdate(t *testing.T) {
	bestBefore := models.NewDate(2026, time.September, 1)
	expiration := models.NewDate(2026, time.September, 15)

	ingredient := &models.Ingredient{
		ID:             7,
		Name:           "Flour",
		Amount:         3,
		Measurement:    "kg",
		BestBeforeDate: bestBefore,
		ExpirationDate: expiration,
		Status:         "Available",
	}

	t.Run("updates existing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE ingredients").
			WithArgs(int64(7), "Flour", 3.0, "kg", bestBefore, expiration, "Available").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), ingredient)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE ingredients").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), ingredient)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("duplicate name is translated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectExec("UPDATE ingredients").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_ingredients_name_lower"})

		err := repo.Update(context.Background(), ingredient)
		assert.ErrorIs(t, err, repositories.ErrDuplicateName)
	})
}

func TestIngredientRepositoryDelete(t *testing.T) {
	t.Run("deletes existing row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectExec("DELETE FROM ingredients").
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), 7)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewIngredientRepository(db, zap.NewNop())

		mock.ExpectExec("DELETE FROM ingredients").
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestTranslateError(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		err := translateError(&pq.Error{Code: "23505", Constraint: "idx_ingredients_name_lower"})
		assert.ErrorIs(t, err, repositories.ErrDuplicateName)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := translateError(&pq.Error{Code: "23503", Constraint: "products_product_type_id_fkey"})
		assert.ErrorIs(t, err, repositories.ErrInvalidReference)
	})

	t.Run("other driver errors pass through", func(t *testing.T) {
		original := &pq.Error{Code: "57014"}
		err := translateError(original)
		assert.False(t, errors.Is(err, repositories.ErrDuplicateName))
		assert.False(t, errors.Is(err, repositories.ErrInvalidReference))
	})

	t.Run("non driver errors pass through", func(t *testing.T) {
		assert.Equal(t, assert.AnError, translateError(assert.AnError))
	})
}
