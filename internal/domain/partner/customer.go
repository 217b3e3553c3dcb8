package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a retail customer.
// Orders and store credits reference customers by name; the customer
// record itself is optional bookkeeping.
type Customer struct {
	shared.BaseAggregateRoot
	Code    string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string         `gorm:"type:varchar(200);not null"`
	Phone   string         `gorm:"type:varchar(50);index"`
	Email   string         `gorm:"type:varchar(200)"`
	Address string         `gorm:"type:text"`
	Status  CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes   string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(code, name string) (*Customer, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            CustomerStatusActive,
	}, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phone, email, address string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validatePartnerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	return nil
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
