package catalog

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create adds a new product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(
		req.SKU, req.Name,
		valueobject.NewMoneyUSD(req.UnitPrice),
		valueobject.NewMoneyUSD(req.CostPrice),
	)
	if err != nil {
		return nil, err
	}
	product.Barcode = req.Barcode
	product.ImageURL = req.ImageURL
	if req.Unit != "" {
		product.Unit = req.Unit
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		if err := product.AssignCategory(*req.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU))

	response := ToProductResponse(product)
	return &response, nil
}

// Update changes a product's details
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Barcode, req.ImageURL, req.Unit); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ChangePrice changes a product's selling price
func (s *ProductService) ChangePrice(ctx context.Context, productID uuid.UUID, req ChangePriceRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.ChangePrice(valueobject.NewMoneyUSD(req.UnitPrice)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product price changed",
		zap.String("product_id", productID.String()),
		zap.String("unit_price", product.UnitPrice.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// AssignCategory moves a product to a category
func (s *ProductService) AssignCategory(ctx context.Context, productID, categoryID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	if err := product.AssignCategory(categoryID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes a product sellable again
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Activate()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate hides a product from sale
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Deactivate()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Discontinue permanently retires a product
func (s *ProductService) Discontinue(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Discontinue()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product discontinued", zap.String("product_id", productID.String()))

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode looks a product up by barcode, for POS scanning
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching a filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByCategory retrieves products of a category
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, nil
}
