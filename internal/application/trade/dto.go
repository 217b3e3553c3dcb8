package trade

import (
	"time"

	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is one product line of a new order
type CreateOrderItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

// CreateOrderRequest is the request to place a new order
type CreateOrderRequest struct {
	BranchID     uuid.UUID                `json:"branch_id" binding:"required"`
	CustomerName string                   `json:"customer_name"`
	Remark       string                   `json:"remark"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	EmployeeID   uuid.UUID                `json:"-"` // From JWT context
}

// ReturnItemRequest is one returned product line
type ReturnItemRequest struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Note      string          `json:"note"`
}

// ProcessReturnRequest is the request to record a return against an order
type ProcessReturnRequest struct {
	OrderID      uuid.UUID           `json:"orderId" binding:"required"`
	CustomerName string              `json:"customerName"` // Optional; defaults to the order's customer name
	ReturnItems  []ReturnItemRequest `json:"returnItems" binding:"required,min=1,dive"`
	EmployeeID   uuid.UUID           `json:"-"` // From JWT context
}

// OrderListFilter is the filter for listing orders
type OrderListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Search    string
	BranchID  *uuid.UUID
	Status    *trade.OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// OrderItemResponse is one item row in an order response
type OrderItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DiscountPct       decimal.Decimal `json:"discount_pct"`
	UnitPriceDeducted decimal.Decimal `json:"unit_price_deducted"`
	LineTotal         decimal.Decimal `json:"line_total"`
	Status            string          `json:"status"`
	Note              string          `json:"note,omitempty"`
}

// OrderResponse is the full order representation
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	OrderDate    time.Time           `json:"order_date"`
	CustomerName string              `json:"customer_name,omitempty"`
	EmployeeID   uuid.UUID           `json:"employee_id"`
	BranchID     uuid.UUID           `json:"branch_id"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	CreditUsed   decimal.Decimal     `json:"credit_used"`
	AmountDue    decimal.Decimal     `json:"amount_due"`
	Status       string              `json:"status"`
	Remark       string              `json:"remark,omitempty"`
	PaidAt       *time.Time          `json:"paid_at,omitempty"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}

// OrderListItemResponse is the compact order representation for lists
type OrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	OrderDate    time.Time       `json:"order_date"`
	CustomerName string          `json:"customer_name,omitempty"`
	BranchID     uuid.UUID       `json:"branch_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
}

// ReturnedItemResponse is one appended return row
type ReturnedItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	SKU               string          `json:"sku"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPriceDeducted decimal.Decimal `json:"unit_price_deducted"`
	RefundAmount      decimal.Decimal `json:"refund_amount"`
	Note              string          `json:"note,omitempty"`
}

// ReturnResponse is the result of a processed return
type ReturnResponse struct {
	OrderID       uuid.UUID              `json:"order_id"`
	OrderNumber   string                 `json:"order_number"`
	ReturnedItems []ReturnedItemResponse `json:"returned_items"`
	CreditID      uuid.UUID              `json:"credit_id"`
	CreditAmount  decimal.Decimal        `json:"credit_amount"`
	ProcessedAt   time.Time              `json:"processed_at"`
}

// ToOrderItemResponse converts a domain order item to its response form
func ToOrderItemResponse(item *trade.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:                item.ID,
		ProductID:         item.ProductID,
		SKU:               item.SKU,
		ProductName:       item.ProductName,
		Quantity:          item.Quantity,
		UnitPrice:         item.UnitPrice,
		DiscountPct:       item.DiscountPct,
		UnitPriceDeducted: item.UnitPriceDeducted,
		LineTotal:         item.LineTotal(),
		Status:            string(item.Status),
		Note:              item.Note,
	}
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for idx := range order.Items {
		items = append(items, ToOrderItemResponse(&order.Items[idx]))
	}

	return OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		OrderDate:    order.OrderDate,
		CustomerName: order.CustomerName,
		EmployeeID:   order.EmployeeID,
		BranchID:     order.BranchID,
		TotalAmount:  order.TotalAmount,
		CreditUsed:   order.CreditUsed,
		AmountDue:    order.AmountDue(),
		Status:       string(order.Status),
		Remark:       order.Remark,
		PaidAt:       order.PaidAt,
		Items:        items,
	}
}

// ToOrderListItemResponse converts a domain order to its list form
func ToOrderListItemResponse(order *trade.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		OrderDate:    order.OrderDate,
		CustomerName: order.CustomerName,
		BranchID:     order.BranchID,
		TotalAmount:  order.TotalAmount,
		Status:       string(order.Status),
	}
}
