package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/ims-inventory/backend/app"
	"github.com/upb/ims-inventory/backend/middleware"
	"github.com/upb/ims-inventory/backend/services/catalog"
	"github.com/upb/ims-inventory/backend/utils"
)

// ProductRequest is the request body for creating or replacing a product.
// Status is derived server-side the same way ingredient status is.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	Measurement   string   `json:"measurement" validate:"required,max=32"`
	ProductTypeID int64    `json:"productTypeId" validate:"required,gt=0"`
}

func (req *ProductRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:          req.Name,
		Price:         *req.Price,
		Amount:        *req.Amount,
		Measurement:   req.Measurement,
		ProductTypeID: req.ProductTypeID,
	}
}

// ListProductsHandler handles GET /products
func ListProductsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		products, err := deps.Catalog.ListProducts(ctx)
		if err != nil {
			deps.Logger.Error("failed to list products",
				zap.String("request_id", requestID),
				zap.Error(err))
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Debug("listed products",
			zap.String("request_id", requestID),
			zap.Int("count", len(products)))

		_ = utils.WriteOK(w, products)
	}
}

// CreateProductHandler handles POST /products
func CreateProductHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			deps.Logger.Warn("failed to parse request body",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteBadRequest(w, "Invalid request body", nil)
			return
		}

		if err := utils.ValidateStruct(&req); err != nil {
			deps.Logger.Warn("request validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			HandleValidationError(w, err, deps.Logger)
			return
		}

		product, err := deps.Catalog.CreateProduct(ctx, req.toInput())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("product created",
			zap.String("request_id", requestID),
			zap.Int64("product_id", product.ID))

		_ = utils.WriteCreated(w, product)
	}
}

// UpdateProductHandler handles PUT /products/{id}
func UpdateProductHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		id, err := parseIDParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid product ID format", nil)
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			deps.Logger.Warn("failed to parse request body",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteBadRequest(w, "Invalid request body", nil)
			return
		}

		if err := utils.ValidateStruct(&req); err != nil {
			deps.Logger.Warn("request validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			HandleValidationError(w, err, deps.Logger)
			return
		}

		product, err := deps.Catalog.UpdateProduct(ctx, id, req.toInput())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("product updated",
			zap.String("request_id", requestID),
			zap.Int64("product_id", product.ID))

		_ = utils.WriteOK(w, product)
	}
}

// DeleteProductHandler handles DELETE /products/{id}
func DeleteProductHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		id, err := parseIDParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid product ID format", nil)
			return
		}

		if err := deps.Catalog.DeleteProduct(ctx, id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("product deleted",
			zap.String("request_id", requestID),
			zap.Int64("product_id", id))

		_ = utils.WriteMessage(w, "Product deleted successfully")
	}
}
