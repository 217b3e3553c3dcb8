package trade

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) AppendItems(ctx context.Context, orderID uuid.UUID, items []trade.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockStoreCreditRepository is a mock implementation of finance.StoreCreditRepository
type MockStoreCreditRepository struct {
	mock.Mock
}

func (m *MockStoreCreditRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.StoreCredit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.StoreCredit), args.Error(1)
}

func (m *MockStoreCreditRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.StoreCredit, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.StoreCredit), args.Error(1)
}

func (m *MockStoreCreditRepository) FindByCustomerName(ctx context.Context, customerName string, filter shared.Filter) ([]finance.StoreCredit, error) {
	args := m.Called(ctx, customerName, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.StoreCredit), args.Error(1)
}

func (m *MockStoreCreditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.StoreCredit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.StoreCredit), args.Error(1)
}

func (m *MockStoreCreditRepository) FindActive(ctx context.Context, filter shared.Filter) ([]finance.StoreCredit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.StoreCredit), args.Error(1)
}

func (m *MockStoreCreditRepository) Save(ctx context.Context, credit *finance.StoreCredit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockStoreCreditRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockItemRepository is a mock implementation of inventory.StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByBranchAndProduct(ctx context.Context, branchID, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, branchID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockItem, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindBelowReorderLevel(ctx context.Context, branchID uuid.UUID) ([]inventory.StockItem, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) Count(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, branchID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, branchID, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByBatchID(ctx context.Context, batchID string) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) Count(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPurchaseRepository is a mock implementation of purchasing.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchasing.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByPurchaseNumber(ctx context.Context, purchaseNumber string) (*purchasing.Purchase, error) {
	args := m.Called(ctx, purchaseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchasing.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[purchasing.Purchase]), args.Error(1)
}

func (m *MockPurchaseRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[purchasing.Purchase]), args.Error(1)
}

func (m *MockPurchaseRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (*shared.Paginated[purchasing.Purchase], error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[purchasing.Purchase]), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *purchasing.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CountByStatus(ctx context.Context, status purchasing.PurchaseStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) GeneratePurchaseNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// fakeRepos bundles the mock repositories behind the transactional
// repository accessors.
type fakeRepos struct {
	orderRepo    *MockOrderRepository
	creditRepo   *MockStoreCreditRepository
	stockRepo    *MockStockItemRepository
	movementRepo *MockStockMovementRepository
	purchaseRepo *MockPurchaseRepository
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		orderRepo:    new(MockOrderRepository),
		creditRepo:   new(MockStoreCreditRepository),
		stockRepo:    new(MockStockItemRepository),
		movementRepo: new(MockStockMovementRepository),
		purchaseRepo: new(MockPurchaseRepository),
	}
}

func (r *fakeRepos) OrderRepo() trade.OrderRepository               { return r.orderRepo }
func (r *fakeRepos) StoreCreditRepo() finance.StoreCreditRepository { return r.creditRepo }
func (r *fakeRepos) StockItemRepo() inventory.StockItemRepository   { return r.stockRepo }
func (r *fakeRepos) StockMovementRepo() inventory.StockMovementRepository {
	return r.movementRepo
}
func (r *fakeRepos) PurchaseRepo() purchasing.PurchaseRepository { return r.purchaseRepo }

// fakeScope runs the transactional function against the fake
// repositories and records how many transactions were opened.
type fakeScope struct {
	repos    *fakeRepos
	executed int
}

func newFakeScope(repos *fakeRepos) *fakeScope {
	return &fakeScope{repos: repos}
}

func (s *fakeScope) Execute(ctx context.Context, fn func(repos txn.TransactionalRepositories) error) error {
	s.executed++
	return fn(s.repos)
}

var _ txn.TransactionScope = (*fakeScope)(nil)
var _ txn.TransactionalRepositories = (*fakeRepos)(nil)
