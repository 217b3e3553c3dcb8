package inventory

import (
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	// MovementTypeIntake represents stock received into a branch (purchase receiving, initial stock)
	MovementTypeIntake MovementType = "INTAKE"
	// MovementTypeTransferIn represents stock transferred in from another branch
	MovementTypeTransferIn MovementType = "TRANSFER_IN"
	// MovementTypeTransferOut represents stock transferred out to another branch
	MovementTypeTransferOut MovementType = "TRANSFER_OUT"
	// MovementTypeDamage represents stock written off as damaged
	MovementTypeDamage MovementType = "DAMAGE"
	// MovementTypeStockOut represents stock written off for other reasons
	MovementTypeStockOut MovementType = "STOCK_OUT"
	// MovementTypeSale represents stock sold through an order
	MovementTypeSale MovementType = "SALE"
	// MovementTypeAdjustment represents a correction to a counted quantity
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIntake,
		MovementTypeTransferIn,
		MovementTypeTransferOut,
		MovementTypeDamage,
		MovementTypeStockOut,
		MovementTypeSale,
		MovementTypeAdjustment:
		return true
	}
	return false
}

// IsIncrease returns true if this movement type increases on-hand quantity
func (t MovementType) IsIncrease() bool {
	return t == MovementTypeIntake || t == MovementTypeTransferIn
}

// IsDecrease returns true if this movement type decreases on-hand quantity
func (t MovementType) IsDecrease() bool {
	switch t {
	case MovementTypeTransferOut, MovementTypeDamage, MovementTypeStockOut, MovementTypeSale:
		return true
	}
	return false
}

// StockMovement is an immutable record of a stock change at a branch.
// Once created, movements cannot be modified; corrections produce new
// movements. BatchID is a caller-supplied grouping token correlating
// the rows created by one user action (e.g. both legs of a transfer).
type StockMovement struct {
	shared.BaseEntity
	StockItemID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_mv_item"`
	BranchID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_mv_branch"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_mv_product"`
	MovementType  MovementType    `gorm:"type:varchar(20);not null;index:idx_stock_mv_type"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Always positive, direction given by type
	BalanceBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BatchID       string          `gorm:"type:varchar(50);index:idx_stock_mv_batch"`
	Reference     string          `gorm:"type:varchar(100)"` // Source document number, if any
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null"`
	Note          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement record for a stock change that has
// already been applied to the item. BalanceAfter must equal the item's
// stored quantity at the time of the call.
func NewStockMovement(
	item *StockItem,
	movementType MovementType,
	quantity, balanceBefore decimal.Decimal,
	batchID, reference string,
	employeeID uuid.UUID,
	note string,
) (*StockMovement, error) {
	if item == nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Stock item cannot be nil")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type: "+string(movementType))
	}
	if quantity.LessThanOrEqual(decimal.Zero) && movementType != MovementTypeAdjustment {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}

	return &StockMovement{
		BaseEntity:    shared.NewBaseEntity(),
		StockItemID:   item.ID,
		BranchID:      item.BranchID,
		ProductID:     item.ProductID,
		MovementType:  movementType,
		Quantity:      quantity.Abs(),
		BalanceBefore: balanceBefore,
		BalanceAfter:  item.Quantity,
		BatchID:       batchID,
		Reference:     reference,
		EmployeeID:    employeeID,
		Note:          note,
	}, nil
}
