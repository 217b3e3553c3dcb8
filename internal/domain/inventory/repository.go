package inventory

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// StockItemRepository defines the interface for stock item persistence
type StockItemRepository interface {
	// FindByID finds a stock item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)

	// FindByBranchAndProduct finds the stock record for a branch-product pair
	FindByBranchAndProduct(ctx context.Context, branchID, productID uuid.UUID) (*StockItem, error)

	// FindByBranch finds all stock records for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]StockItem, error)

	// FindByProduct finds stock records for a product across branches
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]StockItem, error)

	// FindBelowReorderLevel finds branch stock at or below its reorder threshold
	FindBelowReorderLevel(ctx context.Context, branchID uuid.UUID) ([]StockItem, error)

	// Save creates or updates a stock item
	Save(ctx context.Context, item *StockItem) error

	// SaveWithLock saves using optimistic locking on the version column.
	// Returns shared.ErrConcurrencyConflict if the row changed underneath.
	SaveWithLock(ctx context.Context, item *StockItem) error

	// Count counts stock items for a branch
	Count(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error)
}

// StockMovementRepository defines the interface for movement persistence.
// Movements are append-only; there is no update or delete.
type StockMovementRepository interface {
	// Save appends a movement record
	Save(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindByBranch finds movements for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindByProduct finds movements for a product at a branch
	FindByProduct(ctx context.Context, branchID, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindByBatchID finds all movements that share a grouping token
	FindByBatchID(ctx context.Context, batchID string) ([]StockMovement, error)

	// Count counts movements for a branch
	Count(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error)
}
