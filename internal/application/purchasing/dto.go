package purchasing

import (
	"time"

	"github.com/retailpos/backend/internal/domain/purchasing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePurchaseItemRequest is one product line of a new purchase
type CreatePurchaseItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseRequest is the request to record a supplier purchase
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID                   `json:"supplier_id" binding:"required"`
	BranchID   uuid.UUID                   `json:"branch_id" binding:"required"`
	Remark     string                      `json:"remark"`
	Items      []CreatePurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	EmployeeID uuid.UUID                   `json:"-"` // From JWT context
}

// PurchaseItemResponse is one item row in a purchase response
type PurchaseItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	SKU         string          `json:"sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineCost    decimal.Decimal `json:"line_cost"`
}

// PurchaseResponse is the full purchase representation
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	BranchID       uuid.UUID              `json:"branch_id"`
	TotalCost      decimal.Decimal        `json:"total_cost"`
	Status         string                 `json:"status"`
	OrderedAt      time.Time              `json:"ordered_at"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	CancelledAt    *time.Time             `json:"cancelled_at,omitempty"`
	Remark         string                 `json:"remark,omitempty"`
	Items          []PurchaseItemResponse `json:"items,omitempty"`
}

// ToPurchaseResponse converts a domain purchase to its response form
func ToPurchaseResponse(p *purchasing.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for idx := range p.Items {
		item := &p.Items[idx]
		items = append(items, PurchaseItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			SKU:         item.SKU,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			LineCost:    item.LineCost(),
		})
	}

	return PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		BranchID:       p.BranchID,
		TotalCost:      p.TotalCost,
		Status:         string(p.Status),
		OrderedAt:      p.OrderedAt,
		ReceivedAt:     p.ReceivedAt,
		CancelledAt:    p.CancelledAt,
		Remark:         p.Remark,
		Items:          items,
	}
}
