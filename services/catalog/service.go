package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/upb/ims-inventory/backend/internal/stock"
	"github.com/upb/ims-inventory/backend/models"
	"github.com/upb/ims-inventory/backend/repositories"
	"github.com/upb/ims-inventory/backend/services"
)

// ProductTypeInput carries the caller-supplied fields of a product type
type ProductTypeInput struct {
	Name string
}

// ProductInput carries the caller-supplied fields of a product. Status is
// derived from the amount and unit on every write, never accepted as input.
type ProductInput struct {
	Name          string
	Price         float64
	Amount        float64
	Measurement   string
	ProductTypeID int64
}

// Service manages the product catalog: sellable products and the types they
// are grouped under. Deleting a type that products still reference is refused.
type Service interface {
	// ListProductTypes returns all product types
	ListProductTypes(ctx context.Context) ([]*models.ProductType, error)

	// CreateProductType adds a new product type
	CreateProductType(ctx context.Context, input ProductTypeInput) (*models.ProductType, error)

	// UpdateProductType renames the product type identified by id
	UpdateProductType(ctx context.Context, id int64, input ProductTypeInput) (*models.ProductType, error)

	// DeleteProductType removes the product type identified by id
	DeleteProductType(ctx context.Context, id int64) error

	// ListProducts returns all products
	ListProducts(ctx context.Context) ([]*models.Product, error)

	// CreateProduct adds a new product with a derived status
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)

	// UpdateProduct replaces the product identified by id with a derived status
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*models.Product, error)

	// DeleteProduct removes the product identified by id
	DeleteProduct(ctx context.Context, id int64) error
}

// service implements Service on top of the catalog repositories
type service struct {
	types      repositories.ProductTypeRepository
	products   repositories.ProductRepository
	classifier *stock.Classifier
	logger     *zap.Logger
}

// NewService creates a new catalog service
func NewService(
	types repositories.ProductTypeRepository,
	products repositories.ProductRepository,
	classifier *stock.Classifier,
	logger *zap.Logger,
) Service {
	return &service{
		types:      types,
		products:   products,
		classifier: classifier,
		logger:     logger,
	}
}

func (s *service) ListProductTypes(ctx context.Context) ([]*models.ProductType, error) {
	productTypes, err := s.types.List(ctx)
	if err != nil {
		s.logger.Error("failed to list product types", zap.Error(err))
		return nil, services.WrapInternal("failed to list product types", err)
	}
	return productTypes, nil
}

func (s *service) CreateProductType(ctx context.Context, input ProductTypeInput) (*models.ProductType, error) {
	taken, err := s.types.NameExists(ctx, input.Name)
	if err != nil {
		s.logger.Error("failed to check product type name", zap.Error(err))
		return nil, services.WrapInternal("failed to check product type name", err)
	}
	if taken {
		return nil, services.ErrProductTypeNameTaken
	}

	productType := &models.ProductType{Name: input.Name}
	if err := s.types.Create(ctx, productType); err != nil {
		if errors.Is(err, repositories.ErrDuplicateName) {
			return nil, services.ErrProductTypeNameTaken
		}
		s.logger.Error("failed to create product type", zap.Error(err))
		return nil, services.WrapInternal("failed to create product type", err)
	}

	s.logger.Info("product type created",
		zap.Int64("id", productType.ID),
		zap.String("name", productType.Name),
	)
	return productType, nil
}

func (s *service) UpdateProductType(ctx context.Context, id int64, input ProductTypeInput) (*models.ProductType, error) {
	taken, err := s.types.NameExistsExcept(ctx, input.Name, id)
	if err != nil {
		s.logger.Error("failed to check product type name", zap.Error(err))
		return nil, services.WrapInternal("failed to check product type name", err)
	}
	if taken {
		return nil, services.ErrProductTypeNameTaken
	}

	productType := &models.ProductType{ID: id, Name: input.Name}
	if err := s.types.Update(ctx, productType); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, services.ErrProductTypeNotFound
		case errors.Is(err, repositories.ErrDuplicateName):
			return nil, services.ErrProductTypeNameTaken
		default:
			s.logger.Error("failed to update product type", zap.Error(err))
			return nil, services.WrapInternal("failed to update product type", err)
		}
	}

	s.logger.Info("product type updated",
		zap.Int64("id", productType.ID),
		zap.String("name", productType.Name),
	)
	return productType, nil
}

func (s *service) DeleteProductType(ctx context.Context, id int64) error {
	if err := s.types.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return services.ErrProductTypeNotFound
		case errors.Is(err, repositories.ErrInvalidReference):
			return services.ErrProductTypeReferenced
		default:
			s.logger.Error("failed to delete product type", zap.Error(err))
			return services.WrapInternal("failed to delete product type", err)
		}
	}

	s.logger.Info("product type deleted", zap.Int64("id", id))
	return nil
}

func (s *service) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.logger.Error("failed to list products", zap.Error(err))
		return nil, services.WrapInternal("failed to list products", err)
	}
	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	taken, err := s.products.NameExists(ctx, input.Name)
	if err != nil {
		s.logger.Error("failed to check product name", zap.Error(err))
		return nil, services.WrapInternal("failed to check product name", err)
	}
	if taken {
		return nil, services.ErrProductNameTaken
	}

	product := &models.Product{
		Name:          input.Name,
		Price:         input.Price,
		Amount:        input.Amount,
		Measurement:   input.Measurement,
		ProductTypeID: input.ProductTypeID,
		Status:        s.classifier.Classify(input.Amount, input.Measurement),
	}

	if err := s.products.Create(ctx, product); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateName):
			return nil, services.ErrProductNameTaken
		case errors.Is(err, repositories.ErrInvalidReference):
			return nil, services.ErrProductTypeMissing
		default:
			s.logger.Error("failed to create product", zap.Error(err))
			return nil, services.WrapInternal("failed to create product", err)
		}
	}

	s.logger.Info("product created",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.String("status", product.Status),
	)
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	taken, err := s.products.NameExistsExcept(ctx, input.Name, id)
	if err != nil {
		s.logger.Error("failed to check product name", zap.Error(err))
		return nil, services.WrapInternal("failed to check product name", err)
	}
	if taken {
		return nil, services.ErrProductNameTaken
	}

	product := &models.Product{
		ID:            id,
		Name:          input.Name,
		Price:         input.Price,
		Amount:        input.Amount,
		Measurement:   input.Measurement,
		ProductTypeID: input.ProductTypeID,
		Status:        s.classifier.Classify(input.Amount, input.Measurement),
	}

	if err := s.products.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, services.ErrProductNotFound
		case errors.Is(err, repositories.ErrDuplicateName):
			return nil, services.ErrProductNameTaken
		case errors.Is(err, repositories.ErrInvalidReference):
			return nil, services.ErrProductTypeMissing
		default:
			s.logger.Error("failed to update product", zap.Error(err))
			return nil, services.WrapInternal("failed to update product", err)
		}
	}

	s.logger.Info("product updated",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.String("status", product.Status),
	)
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrProductNotFound
		}
		s.logger.Error("failed to delete product", zap.Error(err))
		return services.WrapInternal("failed to delete product", err)
	}

	s.logger.Info("product deleted", zap.Int64("id", id))
	return nil
}
