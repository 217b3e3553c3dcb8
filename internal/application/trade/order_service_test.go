package trade

import (
	"context"
	"testing"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPendingOrder(t *testing.T, lines ...func(*trade.Order)) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder("ORD-20250101-0010", uuid.New(), uuid.New(), "Walk-in")
	require.NoError(t, err)
	for _, line := range lines {
		line(order)
	}
	return order
}

func newStock(t *testing.T, branchID, productID uuid.UUID, qty int64) *inventory.StockItem {
	t.Helper()
	stock, err := inventory.NewStockItem(branchID, productID)
	require.NoError(t, err)
	require.NoError(t, stock.Increase(decimal.NewFromInt(qty)))
	return stock
}

func TestOrderService_Pay(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("redeems a store credit and consumes it with the payment", func(t *testing.T) {
		productID := uuid.New()
		order := newPendingOrder(t, withLine(t, productID, "SKU-100", 2, 100.00, 0))
		stock := newStock(t, order.BranchID, productID, 10)

		credit, err := finance.NewReturnCredit(
			uuid.New(), valueobject.NewMoneyUSDFromFloat(50.00), "Walk-in", "")
		require.NoError(t, err)

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("Save", ctx, order).Return(nil)
		repos.creditRepo.On("FindByID", ctx, credit.ID).Return(credit, nil)
		repos.creditRepo.On("Save", ctx, credit).Return(nil)
		repos.stockRepo.On("FindByBranchAndProduct", ctx, order.BranchID, productID).Return(stock, nil)
		repos.stockRepo.On("SaveWithLock", ctx, stock).Return(nil)
		repos.movementRepo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewOrderService(repos.orderRepo, nil, newFakeScope(repos), zap.NewNop())
		resp, err := service.Pay(ctx, order.ID, &credit.ID, employeeID)

		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusPaid), resp.Status)
		assert.Equal(t, "50", order.CreditUsed.String())
		assert.Equal(t, finance.CreditStatusConsumed, credit.Status)
		require.NotNil(t, credit.ConsumedBy)
		assert.Equal(t, order.ID, *credit.ConsumedBy)
		assert.NotNil(t, credit.ConsumedAt)
		assert.Equal(t, "8", stock.Quantity.String())
	})

	t.Run("rejects a consumed credit without touching the order", func(t *testing.T) {
		productID := uuid.New()
		order := newPendingOrder(t, withLine(t, productID, "SKU-100", 1, 100.00, 0))

		credit, err := finance.NewReturnCredit(
			uuid.New(), valueobject.NewMoneyUSDFromFloat(50.00), "", "")
		require.NoError(t, err)
		require.NoError(t, credit.Consume(uuid.New()))

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.creditRepo.On("FindByID", ctx, credit.ID).Return(credit, nil)

		service := NewOrderService(repos.orderRepo, nil, newFakeScope(repos), zap.NewNop())
		_, err = service.Pay(ctx, order.ID, &credit.ID, employeeID)

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientCredit)
		repos.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		repos.creditRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("caps redemption at the order total", func(t *testing.T) {
		productID := uuid.New()
		order := newPendingOrder(t, withLine(t, productID, "SKU-100", 1, 30.00, 0))
		stock := newStock(t, order.BranchID, productID, 5)

		credit, err := finance.NewReturnCredit(
			uuid.New(), valueobject.NewMoneyUSDFromFloat(100.00), "", "")
		require.NoError(t, err)

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("Save", ctx, order).Return(nil)
		repos.creditRepo.On("FindByID", ctx, credit.ID).Return(credit, nil)
		repos.creditRepo.On("Save", ctx, credit).Return(nil)
		repos.stockRepo.On("FindByBranchAndProduct", ctx, order.BranchID, productID).Return(stock, nil)
		repos.stockRepo.On("SaveWithLock", ctx, stock).Return(nil)
		repos.movementRepo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewOrderService(repos.orderRepo, nil, newFakeScope(repos), zap.NewNop())
		_, err = service.Pay(ctx, order.ID, &credit.ID, employeeID)

		require.NoError(t, err)
		assert.Equal(t, "30", order.CreditUsed.String())
	})

	t.Run("pays without a credit", func(t *testing.T) {
		productID := uuid.New()
		order := newPendingOrder(t, withLine(t, productID, "SKU-100", 1, 20.00, 0))
		stock := newStock(t, order.BranchID, productID, 3)

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("Save", ctx, order).Return(nil)
		repos.stockRepo.On("FindByBranchAndProduct", ctx, order.BranchID, productID).Return(stock, nil)
		repos.stockRepo.On("SaveWithLock", ctx, stock).Return(nil)
		repos.movementRepo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewOrderService(repos.orderRepo, nil, newFakeScope(repos), zap.NewNop())
		resp, err := service.Pay(ctx, order.ID, nil, employeeID)

		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusPaid), resp.Status)
		assert.True(t, order.CreditUsed.IsZero())
		repos.creditRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
