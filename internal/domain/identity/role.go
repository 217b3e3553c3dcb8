package identity

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/lib/pq"
)

// Well-known role names seeded at installation
const (
	RoleNameAdmin   = "admin"
	RoleNameManager = "manager"
	RoleNameCashier = "cashier"
)

// Role represents a named set of permissions assignable to employees
type Role struct {
	shared.BaseAggregateRoot
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Permissions pq.StringArray `gorm:"type:text[]"`
	IsSystem    bool           `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role
func NewRole(name, description string, permissions []string) (*Role, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot exceed 100 characters")
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Permissions:       permissions,
	}, nil
}

// Update updates the role's description and permissions
func (r *Role) Update(description string, permissions []string) error {
	if r.IsSystem {
		return shared.NewDomainError("INVALID_STATE", "System roles cannot be modified")
	}

	r.Description = description
	r.Permissions = permissions
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// HasPermission checks whether the role grants the given permission
func (r *Role) HasPermission(permission string) bool {
	for _, p := range r.Permissions {
		if p == permission || p == "*" {
			return true
		}
	}
	return false
}
