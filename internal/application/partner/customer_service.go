package partner

import (
	"context"

	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer management operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, logger: logger}
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CUSTOMER_EXISTS", "A customer with this code already exists")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Address = req.Address

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("code", customer.Code))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update changes a customer's contact details
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Deactivate disables a customer record
func (s *CustomerService) Deactivate(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.Deactivate()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByPhone looks a customer up by phone number, for POS lookup
func (s *CustomerService) GetByPhone(ctx context.Context, phone string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers matching a filter
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for idx := range customers {
		responses = append(responses, ToCustomerResponse(&customers[idx]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
