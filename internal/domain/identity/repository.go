package identity

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// EmployeeRepository defines the interface for employee persistence
type EmployeeRepository interface {
	// FindByID finds an employee by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)

	// FindByUsername finds an employee by username
	FindByUsername(ctx context.Context, username string) (*Employee, error)

	// FindByCode finds an employee by its code
	FindByCode(ctx context.Context, code string) (*Employee, error)

	// FindAll finds all employees matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)

	// FindByBranch finds employees assigned to a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]Employee, error)

	// Save creates or updates an employee
	Save(ctx context.Context, employee *Employee) error

	// Delete deletes an employee
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts employees matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByUsername checks if an employee with the given username exists
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByName finds a role by its name
	FindByName(ctx context.Context, name string) (*Role, error)

	// FindAll finds all roles matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Role, error)

	// Save creates or updates a role
	Save(ctx context.Context, role *Role) error

	// Delete deletes a role
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts roles matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// InUse checks if any employee is assigned the role
	InUse(ctx context.Context, roleID uuid.UUID) (bool, error)
}
