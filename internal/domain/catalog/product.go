package catalog

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// Product represents a sellable product in the catalog.
// Selling price and cost are stored as decimals; money math goes
// through the Money value object.
type Product struct {
	shared.BaseAggregateRoot
	SKU        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name       string          `gorm:"type:varchar(200);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CostPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Barcode    string          `gorm:"type:varchar(100);index"`
	ImageURL   string          `gorm:"type:text"`
	Unit       string          `gorm:"type:varchar(20);not null;default:'pcs'"`
	Status     ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(sku, name string, unitPrice, costPrice valueobject.Money) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if costPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		UnitPrice:         unitPrice.Amount(),
		CostPrice:         costPrice.Amount(),
		Unit:              "pcs",
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, barcode, imageURL, unit string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Barcode = barcode
	p.ImageURL = imageURL
	if unit != "" {
		p.Unit = unit
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ChangePrice updates the selling price
func (p *Product) ChangePrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	p.UnitPrice = unitPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ChangeCost updates the cost price
func (p *Product) ChangeCost(costPrice valueobject.Money) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost price cannot be negative")
	}

	p.CostPrice = costPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AssignCategory assigns the product to a category
func (p *Product) AssignCategory(categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	p.CategoryID = &categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ClearCategory removes the category assignment
func (p *Product) ClearCategory() {
	p.CategoryID = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Discontinue permanently retires the product from sale
func (p *Product) Discontinue() {
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsSellable returns true if the product can be sold
func (p *Product) IsSellable() bool {
	return p.Status == ProductStatusActive
}

// GetUnitPriceMoney returns the selling price as a Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}

// GetCostPriceMoney returns the cost price as a Money value object
func (p *Product) GetCostPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.CostPrice)
}

func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
