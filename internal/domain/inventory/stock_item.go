package inventory

import (
	"time"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem represents on-hand stock of a product at a branch.
// It is the aggregate root for stock operations; the composite
// identifier is BranchID + ProductID.
type StockItem struct {
	shared.BaseAggregateRoot
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_branch_product,priority:1"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_branch_product,priority:2"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock record for a branch-product combination
func NewStockItem(branchID, productID uuid.UUID) (*StockItem, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BranchID:          branchID,
		ProductID:         productID,
		Quantity:          decimal.Zero,
		ReorderLevel:      decimal.Zero,
	}, nil
}

// Increase adds quantity to the on-hand stock
func (s *StockItem) Increase(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	s.Quantity = s.Quantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Decrease removes quantity from the on-hand stock.
// The quantity on hand never goes negative.
func (s *StockItem) Decrease(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	s.Quantity = s.Quantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// AdjustTo sets the on-hand quantity to an absolute counted value and
// returns the signed delta applied.
func (s *StockItem) AdjustTo(counted decimal.Decimal) (decimal.Decimal, error) {
	if counted.IsNegative() {
		return decimal.Decimal{}, shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}

	delta := counted.Sub(s.Quantity)
	s.Quantity = counted
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return delta, nil
}

// SetReorderLevel sets the low-stock alert threshold
func (s *StockItem) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Reorder level cannot be negative")
	}

	s.ReorderLevel = level
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsBelowReorderLevel returns true if on-hand stock has fallen to or
// below the reorder threshold
func (s *StockItem) IsBelowReorderLevel() bool {
	if s.ReorderLevel.IsZero() {
		return false
	}
	return s.Quantity.LessThanOrEqual(s.ReorderLevel)
}
