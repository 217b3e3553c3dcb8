package finance

import (
	"fmt"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditStatus represents the status of a store credit
type CreditStatus string

const (
	CreditStatusActive   CreditStatus = "active"
	CreditStatusConsumed CreditStatus = "consumed"
)

// IsValid checks if the status is a valid CreditStatus
func (s CreditStatus) IsValid() bool {
	return s == CreditStatusActive || s == CreditStatusConsumed
}

// CreditType represents how a store credit originated
type CreditType string

const (
	// CreditTypeReturn is credit issued as compensation for a return
	CreditTypeReturn CreditType = "return"
	// CreditTypeGoodwill is credit issued manually, e.g. to settle a dispute
	CreditTypeGoodwill CreditType = "goodwill"
)

// StoreCredit is a customer-redeemable balance. Exactly one credit row
// is issued per return transaction, aggregating the refund across all
// returned lines of that call.
type StoreCredit struct {
	shared.BaseAggregateRoot
	CustomerName *string         `gorm:"type:varchar(200)"` // Nullable; walk-in returns carry no name
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreditAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	IssuedAt     time.Time       `gorm:"not null;index"`
	Status       CreditStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	CreditType   CreditType      `gorm:"type:varchar(20);not null"`
	Description  string          `gorm:"type:text"`
	ConsumedAt   *time.Time
	ConsumedBy   *uuid.UUID `gorm:"type:uuid"` // Order the credit was redeemed against
}

// TableName returns the table name for GORM
func (StoreCredit) TableName() string {
	return "store_credits"
}

// NewReturnCredit issues a store credit for a return transaction
func NewReturnCredit(orderID uuid.UUID, amount valueobject.Money, customerName, description string) (*StoreCredit, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}

	credit := &StoreCredit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		CreditAmount:      amount.Amount().Round(2),
		IssuedAt:          time.Now(),
		Status:            CreditStatusActive,
		CreditType:        CreditTypeReturn,
		Description:       description,
	}
	if customerName != "" {
		credit.CustomerName = &customerName
	}

	return credit, nil
}

// NewGoodwillCredit issues a manual credit not backed by a return
func NewGoodwillCredit(orderID uuid.UUID, amount valueobject.Money, customerName, description string) (*StoreCredit, error) {
	credit, err := NewReturnCredit(orderID, amount, customerName, description)
	if err != nil {
		return nil, err
	}
	credit.CreditType = CreditTypeGoodwill
	return credit, nil
}

// Consume marks the credit as redeemed against an order
func (c *StoreCredit) Consume(orderID uuid.UUID) error {
	if c.Status != CreditStatusActive {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot consume a %s credit", c.Status))
	}
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}

	now := time.Now()
	c.Status = CreditStatusConsumed
	c.ConsumedAt = &now
	c.ConsumedBy = &orderID
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the credit can still be redeemed
func (c *StoreCredit) IsActive() bool {
	return c.Status == CreditStatusActive
}

// GetCreditAmountMoney returns the credit amount as a Money value object
func (c *StoreCredit) GetCreditAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(c.CreditAmount)
}
