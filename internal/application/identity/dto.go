package identity

import (
	"time"

	"github.com/retailpos/backend/internal/domain/identity"

	"github.com/google/uuid"
)

// LoginInput contains credentials for a login attempt
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	IP       string `json:"-"`
}

// EmployeeInfo is the employee representation returned with tokens
type EmployeeInfo struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	RoleID      uuid.UUID `json:"role_id"`
	RoleName    string    `json:"role_name"`
	BranchID    uuid.UUID `json:"branch_id"`
	Permissions []string  `json:"permissions"`
}

// LoginResult is returned on successful authentication
type LoginResult struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	Employee              EmployeeInfo `json:"employee"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResult is the refreshed token pair
type RefreshTokenResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ChangePasswordInput contains the old and new passwords
type ChangePasswordInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// CreateEmployeeRequest is the request to register an employee
type CreateEmployeeRequest struct {
	Code     string    `json:"code" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Username string    `json:"username" binding:"required"`
	Password string    `json:"password" binding:"required"`
	RoleID   uuid.UUID `json:"role_id" binding:"required"`
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
}

// UpdateEmployeeRequest is the request to update employee details
type UpdateEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// EmployeeResponse is the full employee representation
type EmployeeResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Username    string     `json:"username"`
	RoleID      uuid.UUID  `json:"role_id"`
	BranchID    uuid.UUID  `json:"branch_id"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee to its response form
func ToEmployeeResponse(e *identity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Code:        e.Code,
		Name:        e.Name,
		Username:    e.Username,
		RoleID:      e.RoleID,
		BranchID:    e.BranchID,
		Phone:       e.Phone,
		Email:       e.Email,
		Status:      string(e.Status),
		LastLoginAt: e.LastLoginAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// CreateRoleRequest is the request to create a role
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// UpdateRoleRequest is the request to update a role
type UpdateRoleRequest struct {
	Description string   `json:"description"`
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// RoleResponse is the full role representation
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Permissions []string  `json:"permissions"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToRoleResponse converts a domain role to its response form
func ToRoleResponse(r *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: []string(r.Permissions),
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
