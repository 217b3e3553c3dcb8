package finance

import (
	"time"

	"github.com/retailpos/backend/internal/domain/finance"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IssueGoodwillCreditRequest is the request to issue a manual credit
type IssueGoodwillCreditRequest struct {
	OrderID      uuid.UUID       `json:"order_id" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CustomerName string          `json:"customer_name"`
	Description  string          `json:"description" binding:"required"`
	EmployeeID   uuid.UUID       `json:"-"`
}

// StoreCreditResponse is the full store credit representation
type StoreCreditResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName *string         `json:"customer_name,omitempty"`
	OrderID      uuid.UUID       `json:"order_id"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	IssuedAt     time.Time       `json:"issued_at"`
	Status       string          `json:"status"`
	CreditType   string          `json:"credit_type"`
	Description  string          `json:"description,omitempty"`
	ConsumedAt   *time.Time      `json:"consumed_at,omitempty"`
	ConsumedBy   *uuid.UUID      `json:"consumed_by,omitempty"`
}

// ToStoreCreditResponse converts a domain credit to its response form
func ToStoreCreditResponse(c *finance.StoreCredit) StoreCreditResponse {
	return StoreCreditResponse{
		ID:           c.ID,
		CustomerName: c.CustomerName,
		OrderID:      c.OrderID,
		CreditAmount: c.CreditAmount,
		IssuedAt:     c.IssuedAt,
		Status:       string(c.Status),
		CreditType:   string(c.CreditType),
		Description:  c.Description,
		ConsumedAt:   c.ConsumedAt,
		ConsumedBy:   c.ConsumedBy,
	}
}
