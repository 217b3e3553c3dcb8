package purchasing

import (
	"context"

	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService handles supplier purchase tracking. Receiving a
// purchase is the only path that turns ordered goods into branch
// stock; the status change and the stock increments commit together.
type PurchaseService struct {
	purchaseRepo purchasing.PurchaseRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	scope        txn.TransactionScope
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo purchasing.PurchaseRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	scope txn.TransactionScope,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		scope:        scope,
		logger:       logger,
	}
}

// Create records a new purchase in ORDERED status
func (s *PurchaseService) Create(ctx context.Context, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase items cannot be empty")
	}

	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*catalog.Product, len(products))
	for idx := range products {
		productsByID[products[idx].ID] = &products[idx]
	}

	purchaseNumber, err := s.purchaseRepo.GeneratePurchaseNumber(ctx)
	if err != nil {
		return nil, err
	}

	purchase, err := purchasing.NewPurchase(purchaseNumber, req.SupplierID, req.BranchID)
	if err != nil {
		return nil, err
	}
	purchase.Remark = req.Remark
	purchase.SetCreatedBy(req.EmployeeID)

	for _, item := range req.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: "+item.ProductID.String())
		}

		if _, err := purchase.AddItem(
			product.ID,
			product.SKU,
			product.Name,
			item.Quantity,
			valueobject.NewMoneyUSD(item.UnitCost),
		); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("Purchase recorded",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("total_cost", purchase.TotalCost.String()))

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Receive marks the purchase received and increments branch stock for
// every line, atomically. The intake movements share one batch ID and
// reference the purchase number.
func (s *PurchaseService) Receive(ctx context.Context, purchaseID, employeeID uuid.UUID) (*PurchaseResponse, error) {
	var response *PurchaseResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		if err := purchase.Receive(); err != nil {
			return err
		}

		batchID := uuid.New().String()
		for idx := range purchase.Items {
			item := &purchase.Items[idx]

			stock, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, purchase.BranchID, item.ProductID)
			if err != nil {
				if !shared.IsNotFound(err) {
					return err
				}
				stock, err = inventory.NewStockItem(purchase.BranchID, item.ProductID)
				if err != nil {
					return err
				}
			}

			before := stock.Quantity
			if err := stock.Increase(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockItemRepo().SaveWithLock(ctx, stock); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				stock, inventory.MovementTypeIntake, item.Quantity, before,
				batchID, purchase.PurchaseNumber, employeeID, "")
			if err != nil {
				return err
			}
			if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		if err := repos.PurchaseRepo().Save(ctx, purchase); err != nil {
			return err
		}

		r := ToPurchaseResponse(purchase)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Purchase received",
		zap.String("purchase_id", response.ID.String()),
		zap.String("purchase_number", response.PurchaseNumber))

	return response, nil
}

// Cancel cancels an unreceived purchase
func (s *PurchaseService) Cancel(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if err := purchase.Cancel(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// GetByID retrieves a purchase with its items
func (s *PurchaseService) GetByID(ctx context.Context, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases matching a filter
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseResponse], error) {
	page, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseResponse, 0, len(page.Items))
	for idx := range page.Items {
		responses = append(responses, ToPurchaseResponse(&page.Items[idx]))
	}

	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// ListBySupplier retrieves purchases for a supplier
func (s *PurchaseService) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseResponse], error) {
	page, err := s.purchaseRepo.FindBySupplier(ctx, supplierID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseResponse, 0, len(page.Items))
	for idx := range page.Items {
		responses = append(responses, ToPurchaseResponse(&page.Items[idx]))
	}

	result := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &result, nil
}
