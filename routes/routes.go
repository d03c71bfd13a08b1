package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/upb/ims-inventory/backend/app"
	"github.com/upb/ims-inventory/backend/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Role gates shared by every data route. Reads admit cashiers, writes
	// do not.
	requireRead := deps.AuthMiddleware.RequireRoles(deps.Config.Access.ReadRoles...)
	requireWrite := deps.AuthMiddleware.RequireRoles(deps.Config.Access.WriteRoles...)

	// Public endpoints
	r.Get("/", handlers.RootHandler(deps))
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// Ingredient stock records
	r.Route("/ingredients", func(r chi.Router) {
		r.With(requireRead).Get("/", handlers.ListIngredientsHandler(deps))
		r.With(requireWrite).Post("/", handlers.CreateIngredientHandler(deps))
		r.With(requireWrite).Put("/{id}", handlers.UpdateIngredientHandler(deps))
		r.With(requireWrite).Delete("/{id}", handlers.DeleteIngredientHandler(deps))
	})

	// Product categories
	r.Route("/product-types", func(r chi.Router) {
		r.With(requireRead).Get("/", handlers.ListProductTypesHandler(deps))
		r.With(requireWrite).Post("/", handlers.CreateProductTypeHandler(deps))
		r.With(requireWrite).Put("/{id}", handlers.UpdateProductTypeHandler(deps))
		r.With(requireWrite).Delete("/{id}", handlers.DeleteProductTypeHandler(deps))
	})

	// Catalog products
	r.Route("/products", func(r chi.Router) {
		r.With(requireRead).Get("/", handlers.ListProductsHandler(deps))
		r.With(requireWrite).Post("/", handlers.CreateProductHandler(deps))
		r.With(requireWrite).Put("/{id}", handlers.UpdateProductHandler(deps))
		r.With(requireWrite).Delete("/{id}", handlers.DeleteProductHandler(deps))
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
