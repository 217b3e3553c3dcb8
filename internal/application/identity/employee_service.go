package identity

import (
	"context"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/org"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeService handles employee management operations
type EmployeeService struct {
	employeeRepo identity.EmployeeRepository
	roleRepo     identity.RoleRepository
	branchRepo   org.BranchRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	employeeRepo identity.EmployeeRepository,
	roleRepo identity.RoleRepository,
	branchRepo org.BranchRepository,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		branchRepo:   branchRepo,
		logger:       logger,
	}
}

// Create registers a new employee
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	exists, err := s.employeeRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "Username is already taken")
	}

	if _, err := s.roleRepo.FindByID(ctx, req.RoleID); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.FindByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	employee, err := identity.NewEmployee(req.Code, req.Name, req.Username, req.Password, req.RoleID, req.BranchID)
	if err != nil {
		return nil, err
	}
	employee.Phone = req.Phone
	employee.Email = req.Email

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("username", employee.Username))

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Update changes an employee's contact details
func (s *EmployeeService) Update(ctx context.Context, employeeID uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if err := employee.Update(req.Name, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// AssignRole changes an employee's role
func (s *EmployeeService) AssignRole(ctx context.Context, employeeID, roleID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		return nil, err
	}

	if err := employee.AssignRole(roleID); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee role changed",
		zap.String("employee_id", employeeID.String()),
		zap.String("role_id", roleID.String()))

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// TransferBranch moves an employee to another branch
func (s *EmployeeService) TransferBranch(ctx context.Context, employeeID, branchID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.FindByID(ctx, branchID); err != nil {
		return nil, err
	}

	if err := employee.TransferBranch(branchID); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Activate reactivates a deactivated employee
func (s *EmployeeService) Activate(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	employee.Activate()
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Deactivate disables an employee's access
func (s *EmployeeService) Deactivate(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	employee.Deactivate()
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee deactivated", zap.String("employee_id", employeeID.String()))

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, employeeID uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List retrieves employees matching a filter
func (s *EmployeeService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[EmployeeResponse], error) {
	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.employeeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for idx := range employees {
		responses = append(responses, ToEmployeeResponse(&employees[idx]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListByBranch retrieves employees of a branch
func (s *EmployeeService) ListByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]EmployeeResponse, 0, len(employees))
	for idx := range employees {
		responses = append(responses, ToEmployeeResponse(&employees[idx]))
	}
	return responses, nil
}
