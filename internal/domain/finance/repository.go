package finance

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// StoreCreditRepository defines the interface for store credit persistence
type StoreCreditRepository interface {
	// FindByID finds a store credit by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StoreCredit, error)

	// FindByOrder finds credits issued against an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]StoreCredit, error)

	// FindByCustomerName finds credits labelled with a customer name
	FindByCustomerName(ctx context.Context, customerName string, filter shared.Filter) ([]StoreCredit, error)

	// FindAll finds credits matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StoreCredit, error)

	// FindActive finds redeemable credits
	FindActive(ctx context.Context, filter shared.Filter) ([]StoreCredit, error)

	// Save creates or updates a store credit
	Save(ctx context.Context, credit *StoreCredit) error

	// Count counts credits matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
