package trade

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// ItemStatus represents the status of an order line item
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "pending"
	ItemStatusPaid    ItemStatus = "paid"
	// ItemStatusReturned marks line items appended by a return. Returned
	// rows are terminal and original rows are never mutated, so the item
	// table doubles as an append-only audit trail.
	ItemStatusReturned ItemStatus = "returned"
)

// OrderItem represents a single product line on an order. Returns are
// recorded as new rows with StatusReturned rather than edits to the
// original sale row.
type OrderItem struct {
	shared.BaseEntity
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_item_order"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_item_product"`
	SKU               string          `gorm:"type:varchar(50);not null"`
	ProductName       string          `gorm:"type:varchar(200);not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	DiscountPct       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	UnitPriceDeducted decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Price per unit after discount
	Status            ItemStatus      `gorm:"type:varchar(20);not null;default:'pending'"`
	Note              string          `gorm:"type:text"`
	EmployeeID        uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns quantity × discounted unit price
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPriceDeducted.Mul(i.Quantity)
}

// IsReturned returns true if this row records a return
func (i *OrderItem) IsReturned() bool {
	return i.Status == ItemStatusReturned
}

// Order represents a point-of-sale order. It is the aggregate root for
// order placement, payment and returns. An order is immutable once
// placed except for line-item status and return rows appended later.
type Order struct {
	shared.AuditedAggregateRoot
	OrderNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderDate    time.Time       `gorm:"not null;index"`
	CustomerName string          `gorm:"type:varchar(200)"` // Optional walk-in customer label
	EmployeeID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreditUsed   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Store credit redeemed at checkout
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Remark       string          `gorm:"type:text"`
	PaidAt       *time.Time

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order for a branch, attributed to an employee
func NewOrder(orderNumber string, employeeID, branchID uuid.UUID, customerName string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	return &Order{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		OrderNumber:          orderNumber,
		OrderDate:            time.Now(),
		CustomerName:         customerName,
		EmployeeID:           employeeID,
		BranchID:             branchID,
		TotalAmount:          decimal.Zero,
		CreditUsed:           decimal.Zero,
		Status:               OrderStatusPending,
		Items:                make([]OrderItem, 0),
	}, nil
}

// AddItem adds a sale line to an unplaced order. The discounted unit
// price is computed from the discount percentage and rounded to cents.
func (o *Order) AddItem(
	productID uuid.UUID,
	sku, productName string,
	quantity decimal.Decimal,
	unitPrice valueobject.Money,
	discountPct decimal.Decimal,
) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPct.IsNegative() || discountPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}

	deducted := unitPrice.Amount().
		Mul(decimal.NewFromInt(100).Sub(discountPct)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	item := OrderItem{
		BaseEntity:        shared.NewBaseEntity(),
		OrderID:           o.ID,
		ProductID:         productID,
		SKU:               sku,
		ProductName:       productName,
		Quantity:          quantity,
		UnitPrice:         unitPrice.Amount(),
		DiscountPct:       discountPct,
		UnitPriceDeducted: deducted,
		Status:            ItemStatusPending,
		EmployeeID:        o.EmployeeID,
	}

	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// ApplyCredit records store credit redeemed against the order total
func (o *Order) ApplyCredit(amount valueobject.Money) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply credit to a non-pending order")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	if amount.Amount().GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount cannot exceed order total")
	}

	o.CreditUsed = amount.Amount()
	o.UpdatedAt = time.Now()

	return nil
}

// MarkPaid marks the order and its pending items as paid
func (o *Order) MarkPaid() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s order as paid", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot mark an empty order as paid")
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	for idx := range o.Items {
		if o.Items[idx].Status == ItemStatusPending {
			o.Items[idx].Status = ItemStatusPaid
			o.Items[idx].UpdatedAt = now
		}
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels a pending order before payment
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s order", o.Status))
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RecordReturn validates one returned product against its original sale
// line and appends a new item row carrying the returned quantity with
// status 'returned'. The original row is never touched. It returns the
// appended row and the credit owed for it (discounted price × quantity).
func (o *Order) RecordReturn(
	productID uuid.UUID,
	quantity decimal.Decimal,
	note string,
	employeeID uuid.UUID,
) (*OrderItem, valueobject.Money, error) {
	if productID == uuid.Nil {
		return nil, valueobject.Money{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, valueobject.Money{}, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if employeeID == uuid.Nil {
		return nil, valueobject.Money{}, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if !o.IsPaid() {
		return nil, valueobject.Money{}, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot return items on a %s order", o.Status))
	}

	original := o.findOriginalItem(productID)
	if original == nil {
		return nil, valueobject.Money{}, shared.NewDomainError("NO_ORDER_DETAIL",
			fmt.Sprintf("No order detail found for order ID %s and product ID %s", o.ID, productID))
	}

	// The original sale quantity is the return ceiling.
	if quantity.GreaterThan(original.Quantity) {
		return nil, valueobject.Money{}, shared.NewDomainError("RETURN_EXCEEDS_QUANTITY",
			fmt.Sprintf("Return quantity %s exceeds available stock %s for product %s",
				quantity, original.Quantity, original.SKU))
	}

	now := time.Now()
	returned := OrderItem{
		BaseEntity:        shared.NewBaseEntity(),
		OrderID:           o.ID,
		ProductID:         original.ProductID,
		SKU:               original.SKU,
		ProductName:       original.ProductName,
		Quantity:          quantity,
		UnitPrice:         original.UnitPrice,
		DiscountPct:       original.DiscountPct,
		UnitPriceDeducted: original.UnitPriceDeducted,
		Status:            ItemStatusReturned,
		Note:              note,
		EmployeeID:        employeeID,
	}
	returned.CreatedAt = now
	returned.UpdatedAt = now

	o.Items = append(o.Items, returned)
	o.UpdatedAt = now

	credit := valueobject.NewMoneyUSD(original.UnitPriceDeducted.Mul(quantity))
	return &o.Items[len(o.Items)-1], credit, nil
}

// findOriginalItem returns the original (non-returned) sale line for a
// product, or nil if the product was never sold on this order.
func (o *Order) findOriginalItem(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID && !o.Items[idx].IsReturned() {
			return &o.Items[idx]
		}
	}
	return nil
}

// recalculateTotal recomputes the order total from non-returned lines
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for idx := range o.Items {
		if !o.Items[idx].IsReturned() {
			total = total.Add(o.Items[idx].LineTotal())
		}
	}
	o.TotalAmount = total
}

// AmountDue returns the total minus any redeemed store credit
func (o *Order) AmountDue() decimal.Decimal {
	return o.TotalAmount.Sub(o.CreditUsed)
}

// GetTotalAmountMoney returns the order total as a Money value object
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// SaleItems returns the non-returned lines of the order
func (o *Order) SaleItems() []OrderItem {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		if !item.IsReturned() {
			items = append(items, item)
		}
	}
	return items
}

// ReturnedItems returns the return rows appended to the order
func (o *Order) ReturnedItems() []OrderItem {
	items := make([]OrderItem, 0)
	for _, item := range o.Items {
		if item.IsReturned() {
			items = append(items, item)
		}
	}
	return items
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// IsCancelled returns true if the order was cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// ItemCount returns the number of non-returned lines
func (o *Order) ItemCount() int {
	return len(o.SaleItems())
}
