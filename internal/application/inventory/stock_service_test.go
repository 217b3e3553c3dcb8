package inventory

import (
	"context"
	"testing"

	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

// fakeRepos exposes the two inventory repositories; the accessors for
// repositories these tests never touch return nil.
type fakeRepos struct {
	stockRepo    *MockStockItemRepository
	movementRepo *MockStockMovementRepository
}

func newFakeRepos() *fakeRepos {
	return &fakeRepos{
		stockRepo:    new(MockStockItemRepository),
		movementRepo: new(MockStockMovementRepository),
	}
}

func (r *fakeRepos) OrderRepo() trade.OrderRepository               { return nil }
func (r *fakeRepos) StoreCreditRepo() finance.StoreCreditRepository { return nil }
func (r *fakeRepos) StockItemRepo() inventory.StockItemRepository   { return r.stockRepo }
func (r *fakeRepos) StockMovementRepo() inventory.StockMovementRepository {
	return r.movementRepo
}
func (r *fakeRepos) PurchaseRepo() purchasing.PurchaseRepository { return nil }

type fakeScope struct {
	repos *fakeRepos
}

func newFakeScope(repos *fakeRepos) *fakeScope {
	return &fakeScope{repos: repos}
}

func (s *fakeScope) Execute(ctx context.Context, fn func(repos txn.TransactionalRepositories) error) error {
	return fn(s.repos)
}

var _ txn.TransactionScope = (*fakeScope)(nil)
var _ txn.TransactionalRepositories = (*fakeRepos)(nil)

func newStockItem(t *testing.T, branchID, productID uuid.UUID, qty int64) *inventory.StockItem {
	t.Helper()
	stock, err := inventory.NewStockItem(branchID, productID)
	require.NoError(t, err)
	require.NoError(t, stock.Increase(decimal.NewFromInt(qty)))
	return stock
}

func TestStockService_Transfer(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	type transferFixture struct {
		service    *StockService
		repos      *fakeRepos
		fromBranch uuid.UUID
		toBranch   uuid.UUID
		productID  uuid.UUID
		movements  *[]*inventory.StockMovement
	}

	setup := func(t *testing.T) transferFixture {
		t.Helper()
		fromBranch := uuid.New()
		toBranch := uuid.New()
		productID := uuid.New()

		repos := newFakeRepos()
		fromStock := newStockItem(t, fromBranch, productID, 10)
		toStock := newStockItem(t, toBranch, productID, 3)
		repos.stockRepo.On("FindByBranchAndProduct", ctx, fromBranch, productID).Return(fromStock, nil)
		repos.stockRepo.On("FindByBranchAndProduct", ctx, toBranch, productID).Return(toStock, nil)
		repos.stockRepo.On("SaveWithLock", ctx, mock.Anything).Return(nil)

		movements := &[]*inventory.StockMovement{}
		repos.movementRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			*movements = append(*movements, args.Get(1).(*inventory.StockMovement))
		}).Return(nil)

		service := NewStockService(repos.stockRepo, repos.movementRepo, newFakeScope(repos), zap.NewNop())
		return transferFixture{service, repos, fromBranch, toBranch, productID, movements}
	}

	t.Run("uses the caller-supplied batch ID on both movement legs", func(t *testing.T) {
		fx := setup(t)

		resp, err := fx.service.Transfer(ctx, TransferRequest{
			FromBranchID: fx.fromBranch,
			ToBranchID:   fx.toBranch,
			ProductID:    fx.productID,
			Quantity:     decimal.NewFromInt(4),
			BatchID:      "shipment-2026-001",
			EmployeeID:   employeeID,
		})

		require.NoError(t, err)
		assert.Equal(t, "shipment-2026-001", resp.BatchID)
		require.Len(t, *fx.movements, 2)
		assert.Equal(t, "shipment-2026-001", (*fx.movements)[0].BatchID)
		assert.Equal(t, "shipment-2026-001", (*fx.movements)[1].BatchID)
		assert.Equal(t, inventory.MovementTypeTransferOut, (*fx.movements)[0].MovementType)
		assert.Equal(t, inventory.MovementTypeTransferIn, (*fx.movements)[1].MovementType)
	})

	t.Run("generates a batch ID when none is supplied", func(t *testing.T) {
		fx := setup(t)

		resp, err := fx.service.Transfer(ctx, TransferRequest{
			FromBranchID: fx.fromBranch,
			ToBranchID:   fx.toBranch,
			ProductID:    fx.productID,
			Quantity:     decimal.NewFromInt(2),
			EmployeeID:   employeeID,
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.BatchID)
		_, err = uuid.Parse(resp.BatchID)
		assert.NoError(t, err)
	})

	t.Run("fails atomically on insufficient source stock", func(t *testing.T) {
		fx := setup(t)

		_, err := fx.service.Transfer(ctx, TransferRequest{
			FromBranchID: fx.fromBranch,
			ToBranchID:   fx.toBranch,
			ProductID:    fx.productID,
			Quantity:     decimal.NewFromInt(50),
			EmployeeID:   employeeID,
		})

		require.Error(t, err)
		fx.repos.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
