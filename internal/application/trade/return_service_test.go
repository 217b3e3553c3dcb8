package trade

import (
	"context"
	"testing"

	"github.com/retailpos/backend/internal/domain/finance"
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

func newPaidOrder(t *testing.T, lines ...func(*trade.Order)) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder("ORD-20250101-0001", uuid.New(), uuid.New(), "Walk-in")
	require.NoError(t, err)
	for _, line := range lines {
		line(order)
	}
	require.NoError(t, order.MarkPaid())
	return order
}

func withLine(t *testing.T, productID uuid.UUID, sku string, qty int64, price float64, discountPct int64) func(*trade.Order) {
	t.Helper()
	return func(order *trade.Order) {
		_, err := order.AddItem(
			productID, sku, "Product "+sku,
			decimal.NewFromInt(qty),
			valueobject.NewMoneyUSDFromFloat(price),
			decimal.NewFromInt(discountPct),
		)
		require.NoError(t, err)
	}
}

func TestReturnService_ProcessReturn(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("credits the discounted price times quantity", func(t *testing.T) {
		// 2 units at 100.00 with 20% discount returned in full: 160.00
		productID := uuid.New()
		order := newPaidOrder(t, withLine(t, productID, "SKU-100", 2, 100.00, 20))

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("AppendItems", ctx, order.ID, mock.Anything).Return(nil)

		var saved *finance.StoreCredit
		repos.creditRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*finance.StoreCredit)
		}).Return(nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		resp, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(2)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "160", resp.CreditAmount.String())
		require.NotNil(t, saved)
		assert.Equal(t, "160", saved.CreditAmount.String())
		assert.Equal(t, finance.CreditStatusActive, saved.Status)
		assert.Equal(t, finance.CreditTypeReturn, saved.CreditType)
		assert.Equal(t, order.ID, saved.OrderID)
		require.Len(t, resp.ReturnedItems, 1)
		assert.Equal(t, "80", resp.ReturnedItems[0].UnitPriceDeducted.String())
	})

	t.Run("labels the credit with the submitted customer name", func(t *testing.T) {
		productID := uuid.New()
		order := newPaidOrder(t, withLine(t, productID, "SKU-100", 1, 50.00, 0))

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("AppendItems", ctx, order.ID, mock.Anything).Return(nil)

		var saved *finance.StoreCredit
		repos.creditRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*finance.StoreCredit)
		}).Return(nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:      order.ID,
			CustomerName: "Alice Chen",
			EmployeeID:   employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		require.NotNil(t, saved.CustomerName)
		assert.Equal(t, "Alice Chen", *saved.CustomerName)
	})

	t.Run("falls back to the order's customer name", func(t *testing.T) {
		productID := uuid.New()
		order := newPaidOrder(t, withLine(t, productID, "SKU-100", 1, 50.00, 0))

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("AppendItems", ctx, order.ID, mock.Anything).Return(nil)

		var saved *finance.StoreCredit
		repos.creditRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*finance.StoreCredit)
		}).Return(nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		require.NotNil(t, saved.CustomerName)
		assert.Equal(t, "Walk-in", *saved.CustomerName)
	})

	t.Run("issues exactly one credit for multiple returned lines", func(t *testing.T) {
		productA := uuid.New()
		productB := uuid.New()
		order := newPaidOrder(t,
			withLine(t, productA, "SKU-A", 2, 100.00, 20), // 160.00 when returned in full
			withLine(t, productB, "SKU-B", 1, 50.00, 0),   //  50.00
		)

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("AppendItems", ctx, order.ID, mock.MatchedBy(func(items []trade.OrderItem) bool {
			return len(items) == 2
		})).Return(nil)
		repos.creditRepo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		resp, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productA, Quantity: decimal.NewFromInt(2)},
				{ProductID: productB, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "210", resp.CreditAmount.String())
		repos.creditRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("writes nothing when one line exceeds its ceiling", func(t *testing.T) {
		productA := uuid.New()
		productB := uuid.New()
		order := newPaidOrder(t,
			withLine(t, productA, "SKU-A", 2, 100.00, 20),
			withLine(t, productB, "SKU-B", 1, 50.00, 0),
		)

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productA, Quantity: decimal.NewFromInt(1)},
				{ProductID: productB, Quantity: decimal.NewFromInt(5)}, // only 1 sold
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds available stock")
		repos.orderRepo.AssertNotCalled(t, "AppendItems", mock.Anything, mock.Anything, mock.Anything)
		repos.creditRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a return against a cancelled order", func(t *testing.T) {
		productID := uuid.New()
		order, err := trade.NewOrder("ORD-20250101-0002", uuid.New(), uuid.New(), "Walk-in")
		require.NoError(t, err)
		withLine(t, productID, "SKU-100", 2, 100.00, 0)(order)
		require.NoError(t, order.Cancel())

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err = service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(2)},
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot return items on a cancelled order")
		repos.orderRepo.AssertNotCalled(t, "AppendItems", mock.Anything, mock.Anything, mock.Anything)
		repos.creditRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a return against a pending order", func(t *testing.T) {
		productID := uuid.New()
		order, err := trade.NewOrder("ORD-20250101-0003", uuid.New(), uuid.New(), "Walk-in")
		require.NoError(t, err)
		withLine(t, productID, "SKU-100", 1, 25.00, 0)(order)

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err = service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot return items on a pending order")
		repos.creditRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when a product was never sold on the order", func(t *testing.T) {
		order := newPaidOrder(t, withLine(t, uuid.New(), "SKU-A", 2, 100.00, 0))

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No order detail found")
		repos.creditRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty return items before opening a transaction", func(t *testing.T) {
		repos := newFakeRepos()
		scope := newFakeScope(repos)

		service := NewReturnService(scope, zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:     uuid.New(),
			EmployeeID:  employeeID,
			ReturnItems: []ReturnItemRequest{},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		assert.Equal(t, 0, scope.executed)
	})

	t.Run("rejects missing order ID before opening a transaction", func(t *testing.T) {
		repos := newFakeRepos()
		scope := newFakeScope(repos)

		service := NewReturnService(scope, zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		assert.Equal(t, 0, scope.executed)
	})

	t.Run("repeated submissions each append rows and issue a credit", func(t *testing.T) {
		// There is no idempotency key. Submitting the same return twice
		// creates two sets of return rows and two credits.
		productID := uuid.New()
		order := newPaidOrder(t, withLine(t, productID, "SKU-100", 2, 100.00, 20))

		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		repos.orderRepo.On("AppendItems", ctx, order.ID, mock.Anything).Return(nil)
		repos.creditRepo.On("Save", ctx, mock.Anything).Return(nil)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		req := ProcessReturnRequest{
			OrderID:    order.ID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(2)},
			},
		}

		first, err := service.ProcessReturn(ctx, req)
		require.NoError(t, err)
		second, err := service.ProcessReturn(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, "160", first.CreditAmount.String())
		assert.Equal(t, "160", second.CreditAmount.String())
		assert.NotEqual(t, first.CreditID, second.CreditID)
		repos.creditRepo.AssertNumberOfCalls(t, "Save", 2)
		repos.orderRepo.AssertNumberOfCalls(t, "AppendItems", 2)
	})

	t.Run("propagates order lookup failure", func(t *testing.T) {
		orderID := uuid.New()
		repos := newFakeRepos()
		repos.orderRepo.On("FindByID", ctx, orderID).Return(nil, shared.ErrNotFound)

		service := NewReturnService(newFakeScope(repos), zap.NewNop())
		_, err := service.ProcessReturn(ctx, ProcessReturnRequest{
			OrderID:    orderID,
			EmployeeID: employeeID,
			ReturnItems: []ReturnItemRequest{
				{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)},
			},
		})

		require.ErrorIs(t, err, shared.ErrNotFound)
	})
}
