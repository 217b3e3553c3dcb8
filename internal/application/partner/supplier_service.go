package partner

import (
	"context"

	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierService handles supplier management operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("SUPPLIER_EXISTS", "A supplier with this code already exists")
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	supplier.ContactName = req.ContactName
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.Address = req.Address

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("Supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("code", supplier.Code))

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update changes a supplier's contact details
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(req.Name, req.ContactName, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Deactivate disables a supplier record
func (s *SupplierService) Deactivate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	supplier.Deactivate()
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers matching a filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SupplierResponse], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[idx]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
