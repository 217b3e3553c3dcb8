package trade

import (
	"context"

	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order placement, payment and cancellation
type OrderService struct {
	orderRepo   trade.OrderRepository
	productRepo catalog.ProductRepository
	scope       txn.TransactionScope
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	scope txn.TransactionScope,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		scope:       scope,
		logger:      logger,
	}
}

// Create places a new pending order. Product names and prices are
// captured onto the order lines at placement time so later catalog
// edits do not rewrite history.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order items cannot be empty")
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

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(orderNumber, req.EmployeeID, req.BranchID, req.CustomerName)
	if err != nil {
		return nil, err
	}
	order.Remark = req.Remark
	order.SetCreatedBy(req.EmployeeID)

	for _, item := range req.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: "+item.ProductID.String())
		}
		if !product.IsSellable() {
			return nil, shared.NewDomainError("PRODUCT_NOT_SELLABLE", "Product is not sellable: "+product.SKU)
		}

		if _, err := order.AddItem(
			product.ID,
			product.SKU,
			product.Name,
			item.Quantity,
			product.GetUnitPriceMoney(),
			item.DiscountPct,
		); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.String()))

	response := ToOrderResponse(order)
	return &response, nil
}

// Pay marks an order as paid, decrements branch stock for every sale
// line and optionally redeems a store credit, all atomically. The sale
// movements share one batch ID so the rows of this payment can be
// traced as a unit.
func (s *OrderService) Pay(ctx context.Context, orderID uuid.UUID, creditID *uuid.UUID, employeeID uuid.UUID) (*OrderResponse, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID is required")
	}

	var response *OrderResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if creditID != nil {
			storeCredit, err := repos.StoreCreditRepo().FindByID(ctx, *creditID)
			if err != nil {
				return err
			}
			if !storeCredit.IsActive() {
				return shared.ErrInsufficientCredit
			}

			redeem := storeCredit.GetCreditAmountMoney()
			if redeem.Amount().GreaterThan(order.TotalAmount) {
				redeem = valueobject.NewMoneyUSD(order.TotalAmount)
			}
			if err := order.ApplyCredit(redeem); err != nil {
				return err
			}
			if err := storeCredit.Consume(order.ID); err != nil {
				return err
			}
			if err := repos.StoreCreditRepo().Save(ctx, storeCredit); err != nil {
				return err
			}
		}

		batchID := uuid.New().String()
		saleItems := order.SaleItems()
		for idx := range saleItems {
			item := saleItems[idx]

			stock, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, order.BranchID, item.ProductID)
			if err != nil {
				return err
			}

			before := stock.Quantity
			if err := stock.Decrease(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockItemRepo().SaveWithLock(ctx, stock); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				stock, inventory.MovementTypeSale, item.Quantity, before,
				batchID, order.OrderNumber, employeeID, "")
			if err != nil {
				return err
			}
			if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
				return err
			}
		}

		if err := order.MarkPaid(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		r := ToOrderResponse(order)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order paid",
		zap.String("order_id", response.ID.String()),
		zap.String("order_number", response.OrderNumber))

	return response, nil
}

// Cancel cancels a pending order
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders matching a filter
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "order_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.BranchID != nil {
		domainFilter.Filters["branch_id"] = *filter.BranchID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderListItemResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, ToOrderListItemResponse(&orders[idx]))
	}

	return responses, total, nil
}
