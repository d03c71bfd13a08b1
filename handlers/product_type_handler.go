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

// ProductTypeRequest is the request body for creating or replacing a product type
type ProductTypeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (req *ProductTypeRequest) toInput() catalog.ProductTypeInput {
	return catalog.ProductTypeInput{Name: req.Name}
}

// ListProductTypesHandler handles GET /product-types
func ListProductTypesHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		productTypes, err := deps.Catalog.ListProductTypes(ctx)
		if err != nil {
			deps.Logger.Error("failed to list product types",
				zap.String("request_id", requestID),
				zap.Error(err))
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Debug("listed product types",
			zap.String("request_id", requestID),
			zap.Int("count", len(productTypes)))

		_ = utils.WriteOK(w, productTypes)
	}
}

// CreateProductTypeHandler handles POST /product-types
func CreateProductTypeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		var req ProductTypeRequest
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

		productType, err := deps.Catalog.CreateProductType(ctx, req.toInput())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("product type created",
			zap.String("request_id", requestID),
			zap.Int64("product_type_id", productType.ID))

		_ = utils.WriteCreated(w, productType)
	}
}

// UpdateProductTypeHandler handles PUT /product-types/{id}
func UpdateProductTypeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		id, err := parseIDParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid product type ID format", nil)
			return
		}

		var req ProductTypeRequest
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

		productType, err := deps.Catalog.UpdateProductType(ctx, id, req.toInput())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("product type updated",
			zap.String("request_id", requestID),
			zap.Int64("product_type_id", productType.ID))

		_ = utils.WriteOK(w, productType)
	}
}

// DeleteProductTypeHandler handles DELETE /product-types/{id}
func DeleteProductTypeHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		id, err := parseIDParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid product type ID format", nil)
			return
		}

		if err := deps.Catalog.DeleteProductType(ctx, id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("product type deleted",
			zap.String("request_id", requestID),
			zap.Int64("product_type_id", id))

		_ = utils.WriteMessage(w, "Product type deleted successfully")
	}
}
