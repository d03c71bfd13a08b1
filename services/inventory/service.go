package inventory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/upb/ims-inventory/backend/internal/stock"
	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/repositories"
	"github.com/upb/ims-inventory/backend/services"
)

// IngredientInput carries the caller-supplied fields of an ingredient record.
// The availability status is never accepted from callers; it is derived from
// the amount and unit on every write.
type IngredientInput struct {
	Name           string
	Amount         float64
	Measurement    string
	BestBeforeDate models.Date
	ExpirationDate models.Date
}

// Service manages ingredient stock records
type Service interface {
	// List returns all ingredient records
	List(ctx context.Context) ([]*models.Ingredient, error)

	// Create adds a new ingredient record with a derived status
	Create(ctx context.Context, input IngredientInput) (*models.Ingredient, error)

	// Update replaces the ingredient identified by id with a derived status
	Update(ctx context.Context, id int64, input IngredientInput) (*models.Ingredient, error)

	// Delete removes the ingredient identified by id
	Delete(ctx context.Context, id int64) error
}

// service implements Service on top of the ingredient repository
type service struct {
	repo       repositories.IngredientRepository
	classifier *stock.Classifier
	logger     *zap.Logger
}

// NewService creates a new ingredient inventory service
func NewService(repo repositories.IngredientRepository, classifier *stock.Classifier, logger *zap.Logger) Service {
	return &service{
		repo:       repo,
		classifier: classifier,
		logger:     logger,
	}
}

func (s *service) List(ctx context.Context) ([]*models.Ingredient, error) {
	ingredients, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list ingredients", zap.Error(err))
		return nil, services.WrapInternal("failed to list ingredients", err)
	}
	return ingredients, nil
}

func (s *service) Create(ctx context.Context, input IngredientInput) (*models.Ingredient, error) {
	taken, err := s.repo.NameExists(ctx, input.Name)
	if err != nil {
		s.logger.Error("failed to check ingredient name", zap.Error(err))
		return nil, services.WrapInternal("failed to check ingredient name", err)
	}
	if taken {
		return nil, services.ErrIngredientNameTaken
	}

	ingredient := &models.Ingredient{
		Name:           input.Name,
		Amount:         input.Amount,
		Measurement:    input.Measurement,
		BestBeforeDate: input.BestBeforeDate,
		ExpirationDate: input.ExpirationDate,
		Status:         s.classifier.Classify(input.Amount, input.Measurement),
	}

	if err := s.repo.Create(ctx, ingredient); err != nil {
		// The unique index closes the race the pre-check leaves open
		if errors.Is(err, repositories.ErrDuplicateName) {
			return nil, services.ErrIngredientNameTaken
		}
		s.logger.Error("failed to create ingredient", zap.Error(err))
		return nil, services.WrapInternal("failed to create ingredient", err)
	}

	s.logger.Info("ingredient created",
		zap.Int64("id", ingredient.ID),
		zap.String("name", ingredient.Name),
		zap.String("status", ingredient.Status),
	)
	return ingredient, nil
}

func (s *service) Update(ctx context.Context, id int64, input IngredientInput) (*models.Ingredient, error) {
	// Name conflicts win over a missing record, matching the check order on
	// create: the conflict is detected before the row is touched.
	taken, err := s.repo.NameExistsExcept(ctx, input.Name, id)
	if err != nil {
		s.logger.Error("failed to check ingredient name", zap.Error(err))
		return nil, services.WrapInternal("failed to check ingredient name", err)
	}
	if taken {
		return nil, services.ErrIngredientNameTaken
	}

	ingredient := &models.Ingredient{
		ID:             id,
		Name:           input.Name,
		Amount:         input.Amount,
		Measurement:    input.Measurement,
		BestBeforeDate: input.BestBeforeDate,
		ExpirationDate: input.ExpirationDate,
		Status:         s.classifier.Classify(input.Amount, input.Measurement),
	}

	if err := s.repo.Update(ctx, ingredient); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, services.ErrIngredientNotFound
		case errors.Is(err, repositories.ErrDuplicateName):
			return nil, services.ErrIngredientNameTaken
		default:
			s.logger.Error("failed to update ingredient", zap.Error(err))
			return nil, services.WrapInternal("failed to update ingredient", err)
		}
	}

	s.logger.Info("ingredient updated",
		zap.Int64("id", ingredient.ID),
		zap.String("name", ingredient.Name),
		zap.String("status", ingredient.Status),
	)
	return ingredient, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrIngredientNotFound
		}
		s.logger.Error("failed to delete ingredient", zap.Error(err))
		return services.WrapInternal("failed to delete ingredient", err)
	}

	s.logger.Info("ingredient deleted", zap.Int64("id", id))
	return nil
}
