package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/upb/ims-inventory/backend/config"
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	// Check if we can query
	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// InitSchema initializes the database schema.
// Name uniqueness is case-insensitive and enforced by the database, not by
// application-level checks alone; writes racing past the pre-checks hit the
// LOWER(name) indexes and are translated into duplicate errors.
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		-- Ingredient stock records
		CREATE TABLE IF NOT EXISTS ingredients (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			measurement TEXT NOT NULL,
			best_before_date DATE NOT NULL,
			expiration_date DATE NOT NULL,
			status TEXT NOT NULL
		);

		-- Product categories
		CREATE TABLE IF NOT EXISTS product_types (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		);

		-- Catalog products
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			measurement TEXT NOT NULL,
			product_type_id BIGINT NOT NULL REFERENCES product_types(id),
			status TEXT NOT NULL
		);

		-- Case-insensitive name uniqueness
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_name_lower ON ingredients (LOWER(name));
		CREATE UNIQUE INDEX IF NOT EXISTS idx_product_types_name_lower ON product_types (LOWER(name));
		CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_lower ON products (LOWER(name));

		CREATE INDEX IF NOT EXISTS idx_products_product_type_id ON products(product_type_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}
