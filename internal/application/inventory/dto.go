package inventory

import (
	"time"

	"github.com/retailpos/backend/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IntakeRequest records stock received into a branch
type IntakeRequest struct {
	BranchID   uuid.UUID       `json:"branch_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Reference  string          `json:"reference"`
	Note       string          `json:"note"`
	EmployeeID uuid.UUID       `json:"-"` // From JWT context
}

// TransferRequest moves stock between two branches
type TransferRequest struct {
	FromBranchID uuid.UUID       `json:"from_branch_id" binding:"required"`
	ToBranchID   uuid.UUID       `json:"to_branch_id" binding:"required"`
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	BatchID      string          `json:"batch_id"` // Optional grouping token; generated when absent
	Note         string          `json:"note"`
	EmployeeID   uuid.UUID       `json:"-"`
}

// WriteOffRequest removes stock as damaged or otherwise lost
type WriteOffRequest struct {
	BranchID   uuid.UUID       `json:"branch_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Note       string          `json:"note"`
	EmployeeID uuid.UUID       `json:"-"`
}

// AdjustRequest corrects on-hand stock to a counted quantity
type AdjustRequest struct {
	BranchID   uuid.UUID       `json:"branch_id" binding:"required"`
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	Note       string          `json:"note"`
	EmployeeID uuid.UUID       `json:"-"`
}

// StockItemResponse is the on-hand stock representation
type StockItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	BranchID     uuid.UUID       `json:"branch_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	LowStock     bool            `json:"low_stock"`
}

// MovementResponse is one stock movement record
type MovementResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	MovementType  string          `json:"movement_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	BatchID       string          `json:"batch_id,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransferResponse describes both legs of a completed transfer
type TransferResponse struct {
	BatchID   string            `json:"batch_id"`
	FromStock StockItemResponse `json:"from_stock"`
	ToStock   StockItemResponse `json:"to_stock"`
}

// ToStockItemResponse converts a domain stock item to its response form
func ToStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           item.ID,
		BranchID:     item.BranchID,
		ProductID:    item.ProductID,
		Quantity:     item.Quantity,
		ReorderLevel: item.ReorderLevel,
		LowStock:     item.IsBelowReorderLevel(),
	}
}

// ToMovementResponse converts a domain movement to its response form
func ToMovementResponse(mv *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            mv.ID,
		BranchID:      mv.BranchID,
		ProductID:     mv.ProductID,
		MovementType:  mv.MovementType.String(),
		Quantity:      mv.Quantity,
		BalanceBefore: mv.BalanceBefore,
		BalanceAfter:  mv.BalanceAfter,
		BatchID:       mv.BatchID,
		Reference:     mv.Reference,
		EmployeeID:    mv.EmployeeID,
		Note:          mv.Note,
		CreatedAt:     mv.CreatedAt,
	}
}
