package trade

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order with its items by order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds orders matching the filter (items not loaded)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByBranch finds orders for a branch (items not loaded)
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByDateRange finds orders placed within [from, to)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Order, error)

	// Save persists the order and all of its items
	Save(ctx context.Context, order *Order) error

	// AppendItems persists newly appended item rows without rewriting
	// the existing rows of the order
	AppendItems(ctx context.Context, orderID uuid.UUID, items []OrderItem) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts orders in a given status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)

	// GenerateOrderNumber generates the next sequential order number
	GenerateOrderNumber(ctx context.Context) (string, error)
}
