package org

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// BranchStatus represents the status of a branch
type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "active"
	BranchStatusInactive BranchStatus = "inactive"
)

// IsValid checks if the status is a valid BranchStatus
func (s BranchStatus) IsValid() bool {
	return s == BranchStatusActive || s == BranchStatusInactive
}

// Branch represents a physical retail location.
// Stock and orders are scoped per branch.
type Branch struct {
	shared.BaseAggregateRoot
	Code      string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string       `gorm:"type:varchar(200);not null"`
	Address   string       `gorm:"type:text"`
	City      string       `gorm:"type:varchar(100)"`
	Phone     string       `gorm:"type:varchar(50)"`
	Email     string       `gorm:"type:varchar(200)"`
	Status    BranchStatus `gorm:"type:varchar(20);not null;default:'active'"`
	IsDefault bool         `gorm:"not null;default:false"`
	Notes     string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch with required fields
func NewBranch(code, name string) (*Branch, error) {
	if err := validateBranchCode(code); err != nil {
		return nil, err
	}
	if err := validateBranchName(name); err != nil {
		return nil, err
	}

	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            BranchStatusActive,
	}, nil
}

// Update updates the branch's basic information
func (b *Branch) Update(name, address, city, phone, email string) error {
	if err := validateBranchName(name); err != nil {
		return err
	}

	b.Name = name
	b.Address = address
	b.City = city
	b.Phone = phone
	b.Email = email
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Activate marks the branch as active
func (b *Branch) Activate() {
	b.Status = BranchStatusActive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Deactivate marks the branch as inactive
func (b *Branch) Deactivate() {
	b.Status = BranchStatusInactive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// MarkDefault flags this branch as the default for operations
func (b *Branch) MarkDefault() {
	b.IsDefault = true
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// IsActive returns true if the branch is active
func (b *Branch) IsActive() bool {
	return b.Status == BranchStatusActive
}

func validateBranchCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Branch code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Branch code cannot exceed 50 characters")
	}
	return nil
}

func validateBranchName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Branch name cannot exceed 200 characters")
	}
	return nil
}
