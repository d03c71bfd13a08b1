package app

import (
	"context"
	"fmt"

	"github.com/upb/ims-inventory/backend/config"
	"github.com/upb/ims-inventory/backend/identity"
	"github.com/upb/ims-inventory/backend/internal/stock"
	"github.com/upb/ims-inventory/backend/middleware"
	"github.com/upb/ims-inventory/backend/repositories"
	"github.com/upb/ims-inventory/backend/repositories/postgres"
	"github.com/upb/ims-inventory/backend/services/catalog"
	"github.com/upb/ims-inventory/backend/services/inventory"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Ingredients  repositories.IngredientRepository
	ProductTypes repositories.ProductTypeRepository
	Products     repositories.ProductRepository

	// Services
	Inventory inventory.Service
	Catalog   catalog.Service

	// Auth
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize PostgreSQL
	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	deps.initRepositories()

	// Initialize domain services
	deps.initServices(cfg)

	// Initialize auth against the identity service
	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Test the connection
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Create tables and unique indexes when missing
	if err := factory.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Ingredients = repos.Ingredients
	d.ProductTypes = repos.ProductTypes
	d.Products = repos.Products

	d.Logger.Info("repositories initialized")
}

// initServices wires the domain services on top of the repositories
func (d *Dependencies) initServices(cfg *config.Config) {
	classifier := stock.NewClassifier(cfg.Stock.Thresholds, cfg.Stock.DefaultThreshold)

	d.Inventory = inventory.NewService(d.Ingredients, classifier, d.Logger)
	d.Catalog = catalog.NewService(d.ProductTypes, d.Products, classifier, d.Logger)

	d.Logger.Info("services initialized")
}

// initAuth wires the identity service client into the auth middleware
func (d *Dependencies) initAuth(cfg *config.Config) {
	validator := identity.NewClient(identity.Config{
		BaseURL:     cfg.Identity.BaseURL,
		HTTPTimeout: cfg.Identity.Timeout,
	}, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(validator, d.Logger)

	d.Logger.Info("auth middleware initialized",
		zap.String("identity_base_url", cfg.Identity.BaseURL))
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
