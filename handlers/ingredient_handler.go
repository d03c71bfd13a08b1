package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/upb/ims-inventory/backend/app"
	"github.com/upb/ims-inventory/backend/middleware"
	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/services/inventory"
	"github.com/upb/ims-inventory/backend/utils"
)

// IngredientRequest is the request body for creating or replacing an
// ingredient. Status is absent on purpose; it is derived server-side from
// the amount and measurement.
type IngredientRequest struct {
	Name           string      `json:"name" validate:"required,max=255"`
	Amount         *float64    `json:"amount" validate:"required,gte=0"`
	Measurement    string      `json:"measurement" validate:"required,max=32"`
	BestBeforeDate models.Date `json:"bestBeforeDate" validate:"required"`
	ExpirationDate models.Date `json:"expirationDate" validate:"required"`
}

func (req *IngredientRequest) toInput() inventory.IngredientInput {
	return inventory.IngredientInput{
		Name:           req.Name,
		Amount:         *req.Amount,
		Measurement:    req.Measurement,
		BestBeforeDate: req.BestBeforeDate,
		ExpirationDate: req.ExpirationDate,
	}
}

// parseIDParam parses the {id} route parameter as a positive integer
func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListIngredientsHandler handles GET /ingredients
func ListIngredientsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		ingredients, err := deps.Inventory.List(ctx)
		if err != nil {
			deps.Logger.Error("failed to list ingredients",
				zap.String("request_id", requestID),
				zap.Error(err))
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Debug("listed ingredients",
			zap.String("request_id", requestID),
			zap.Int("count", len(ingredients)))

		_ = utils.WriteOK(w, ingredients)
	}
}

// CreateIngredientHandler handles POST /ingredients
func CreateIngredientHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		var req IngredientRequest
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

		ingredient, err := deps.Inventory.Create(ctx, req.toInput())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("ingredient created",
			zap.String("request_id", requestID),
			zap.Int64("ingredient_id", ingredient.ID))

		_ = utils.WriteCreated(w, ingredient)
	}
}

// UpdateIngredientHandler handles PUT /ingredients/{id}
func UpdateIngredientHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		id, err := parseIDParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid ingredient ID format", nil)
			return
		}

		var req IngredientRequest
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

		ingredient, err := deps.Inventory.Update(ctx, id, req.toInput())
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("ingredient updated",
			zap.String("request_id", requestID),
			zap.Int64("ingredient_id", ingredient.ID))

		_ = utils.WriteOK(w, ingredient)
	}
}

// DeleteIngredientHandler handles DELETE /ingredients/{id}
func DeleteIngredientHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetRequestIDFromContext(ctx)

		id, err := parseIDParam(r)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid ingredient ID format", nil)
			return
		}

		if err := deps.Inventory.Delete(ctx, id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		deps.Logger.Info("ingredient deleted",
			zap.String("request_id", requestID),
			zap.Int64("ingredient_id", id))

		_ = utils.WriteMessage(w, "Ingredient deleted successfully")
	}
}
