package purchasing

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a supplier purchase
type PurchaseStatus string

const (
	PurchaseStatusOrdered   PurchaseStatus = "ORDERED"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// PurchaseItem represents a product line on a supplier purchase
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_purchase_item_purchase"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_purchase_item_product"`
	SKU         string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// LineCost returns quantity × unit cost
func (i *PurchaseItem) LineCost() decimal.Decimal {
	return i.UnitCost.Mul(i.Quantity)
}

// Purchase represents goods ordered from a supplier for a branch.
// Receiving the purchase is what moves its quantities into branch stock.
type Purchase struct {
	shared.AuditedAggregateRoot
	PurchaseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalCost      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;default:'ORDERED'"`
	OrderedAt      time.Time       `gorm:"not null"`
	ReceivedAt     *time.Time
	CancelledAt    *time.Time
	Remark         string `gorm:"type:text"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new supplier purchase
func NewPurchase(purchaseNumber string, supplierID, branchID uuid.UUID) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	return &Purchase{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		PurchaseNumber:       purchaseNumber,
		SupplierID:           supplierID,
		BranchID:             branchID,
		TotalCost:            decimal.Zero,
		Status:               PurchaseStatusOrdered,
		OrderedAt:            time.Now(),
		Items:                make([]PurchaseItem, 0),
	}, nil
}

// AddItem adds a product line to an unreceived purchase
func (p *Purchase) AddItem(productID uuid.UUID, sku, productName string, quantity decimal.Decimal, unitCost valueobject.Money) (*PurchaseItem, error) {
	if p.Status != PurchaseStatusOrdered {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-ordered purchase")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	item := PurchaseItem{
		BaseEntity:  shared.NewBaseEntity(),
		PurchaseID:  p.ID,
		ProductID:   productID,
		SKU:         sku,
		ProductName: productName,
		Quantity:    quantity,
		UnitCost:    unitCost.Amount(),
	}

	p.Items = append(p.Items, item)
	p.recalculateTotalCost()
	p.UpdatedAt = time.Now()

	return &p.Items[len(p.Items)-1], nil
}

// Receive marks the purchase as received. The caller is responsible for
// applying the stock increase in the same transaction.
func (p *Purchase) Receive() error {
	if p.Status != PurchaseStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive a %s purchase", p.Status))
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot receive a purchase without items")
	}

	now := time.Now()
	p.Status = PurchaseStatusReceived
	p.ReceivedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Cancel cancels an unreceived purchase
func (p *Purchase) Cancel() error {
	if p.Status != PurchaseStatusOrdered {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s purchase", p.Status))
	}

	now := time.Now()
	p.Status = PurchaseStatusCancelled
	p.CancelledAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// recalculateTotalCost recomputes the purchase total from its lines
func (p *Purchase) recalculateTotalCost() {
	total := decimal.Zero
	for idx := range p.Items {
		total = total.Add(p.Items[idx].LineCost())
	}
	p.TotalCost = total
}

// GetTotalCostMoney returns the purchase total as a Money value object
func (p *Purchase) GetTotalCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.TotalCost)
}

// IsReceived returns true if the purchase has been received
func (p *Purchase) IsReceived() bool {
	return p.Status == PurchaseStatusReceived
}
