package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a goods supplier tracked for purchasing
type Supplier struct {
	shared.BaseAggregateRoot
	Code        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string         `gorm:"type:varchar(200);not null"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50);index"`
	Email       string         `gorm:"type:varchar(200)"`
	Address     string         `gorm:"type:text"`
	Status      SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(code, name string) (*Supplier, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            SupplierStatusActive,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, contactName, phone, email, address string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	s.Name = name
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate marks the supplier as active
func (s *Supplier) Activate() {
	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}
