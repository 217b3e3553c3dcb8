package catalog

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles category management operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CATEGORY_EXISTS", "A category with this code already exists")
	}

	category, err := catalog.NewCategory(req.Code, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("code", category.Code))

	response := ToCategoryResponse(category)
	return &response, nil
}

// Update changes a category's name and description
func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category that has no products
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return err
	}

	hasProducts, err := s.categoryRepo.HasProducts(ctx, categoryID)
	if err != nil {
		return err
	}
	if hasProducts {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category still has products assigned")
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}

	s.logger.Info("Category deleted", zap.String("category_id", categoryID.String()))
	return nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories matching a filter
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		responses = append(responses, ToCategoryResponse(&categories[idx]))
	}
	return responses, nil
}
