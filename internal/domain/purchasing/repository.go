package purchasing

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// PurchaseRepository defines the persistence interface for supplier purchases
type PurchaseRepository interface {
	// FindByID retrieves a purchase with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByPurchaseNumber retrieves a purchase by its number with its items
	FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)

	// FindAll retrieves purchases with pagination (items not loaded)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Purchase], error)

	// FindBySupplier retrieves purchases for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[Purchase], error)

	// FindByBranch retrieves purchases for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (*shared.Paginated[Purchase], error)

	// Save persists a purchase and its items
	Save(ctx context.Context, purchase *Purchase) error

	// CountByStatus counts purchases in a given status
	CountByStatus(ctx context.Context, status PurchaseStatus) (int64, error)

	// GeneratePurchaseNumber generates the next purchase number
	GeneratePurchaseNumber(ctx context.Context) (string, error)
}
