package identity

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// EmployeeStatus represents the status of an employee account
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee represents a staff member who operates the POS.
// Every order, return and stock movement is attributed to an employee.
type Employee struct {
	shared.BaseAggregateRoot
	Code         string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string         `gorm:"type:varchar(200);not null"`
	Username     string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	RoleID       uuid.UUID      `gorm:"type:uuid;not null;index"`
	BranchID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Phone        string         `gorm:"type:varchar(50)"`
	Email        string         `gorm:"type:varchar(200)"`
	Status       EmployeeStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new employee with a hashed password
func NewEmployee(code, name, username, password string, roleID, branchID uuid.UUID) (*Employee, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Employee code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if roleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	e := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Username:          strings.ToLower(username),
		RoleID:            roleID,
		BranchID:          branchID,
		Status:            EmployeeStatusActive,
	}
	if err := e.SetPassword(password); err != nil {
		return nil, err
	}

	return e, nil
}

// Update updates the employee's basic information
func (e *Employee) Update(name, phone, email string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}

	e.Name = name
	e.Phone = phone
	e.Email = email
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// ChangePassword verifies the current password and sets a new one
func (e *Employee) ChangePassword(oldPassword, newPassword string) error {
	if !e.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return e.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one (admin reset)
func (e *Employee) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	e.PasswordHash = string(hash)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (e *Employee) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password))
	return err == nil
}

// AssignRole changes the employee's role
func (e *Employee) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_ROLE", "Role ID cannot be empty")
	}

	e.RoleID = roleID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// TransferBranch moves the employee to another branch
func (e *Employee) TransferBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	e.BranchID = branchID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// RecordLogin stamps the last successful login time
func (e *Employee) RecordLogin() {
	now := time.Now()
	e.LastLoginAt = &now
	e.UpdatedAt = now
}

// Activate marks the employee as active
func (e *Employee) Activate() {
	e.Status = EmployeeStatusActive
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Deactivate marks the employee as inactive; inactive employees cannot log in
func (e *Employee) Deactivate() {
	e.Status = EmployeeStatusInactive
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// IsActive returns true if the employee account is active
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 || len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be between 3 and 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}
