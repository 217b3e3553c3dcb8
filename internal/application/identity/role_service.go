package identity

import (
	"context"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService handles role management operations
type RoleService struct {
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository, logger *zap.Logger) *RoleService {
	return &RoleService{roleRepo: roleRepo, logger: logger}
}

// Create creates a new role
func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error) {
	if existing, err := s.roleRepo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ROLE_EXISTS", "A role with this name already exists")
	}

	role, err := identity.NewRole(req.Name, req.Description, req.Permissions)
	if err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name))

	response := ToRoleResponse(role)
	return &response, nil
}

// Update changes a role's description and permissions
func (s *RoleService) Update(ctx context.Context, roleID uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if role.IsSystem {
		return nil, shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be modified")
	}

	if err := role.Update(req.Description, req.Permissions); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// Delete removes an unused role
func (s *RoleService) Delete(ctx context.Context, roleID uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}

	if role.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	inUse, err := s.roleRepo.InUse(ctx, roleID)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewDomainError("ROLE_IN_USE", "Role is assigned to one or more employees")
	}

	if err := s.roleRepo.Delete(ctx, roleID); err != nil {
		return err
	}

	s.logger.Info("Role deleted", zap.String("role_id", roleID.String()))
	return nil
}

// GetByID retrieves a role by ID
func (s *RoleService) GetByID(ctx context.Context, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	response := ToRoleResponse(role)
	return &response, nil
}

// List retrieves roles matching a filter
func (s *RoleService) List(ctx context.Context, filter shared.Filter) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RoleResponse, 0, len(roles))
	for idx := range roles {
		responses = append(responses, ToRoleResponse(&roles[idx]))
	}
	return responses, nil
}
