package trade

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("ORD-20250101-0001", uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	employeeID := uuid.New()
	branchID := uuid.New()

	t.Run("creates order successfully", func(t *testing.T) {
		order, err := NewOrder("ORD-20250101-0001", employeeID, branchID, "Walk-in")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, order.ID)
		assert.Equal(t, "ORD-20250101-0001", order.OrderNumber)
		assert.Equal(t, employeeID, order.EmployeeID)
		assert.Equal(t, branchID, order.BranchID)
		assert.Equal(t, "Walk-in", order.CustomerName)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Empty(t, order.Items)
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		order, err := NewOrder("", employeeID, branchID, "")

		require.Error(t, err)
		assert.Nil(t, order)
	})

	t.Run("fails with nil employee ID", func(t *testing.T) {
		order, err := NewOrder("ORD-1", uuid.Nil, branchID, "")

		require.Error(t, err)
		assert.Nil(t, order)
	})

	t.Run("fails with nil branch ID", func(t *testing.T) {
		order, err := NewOrder("ORD-1", employeeID, uuid.Nil, "")

		require.Error(t, err)
		assert.Nil(t, order)
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("computes discounted unit price rounded to cents", func(t *testing.T) {
		order := createTestOrder(t)

		item, err := order.AddItem(
			uuid.New(), "SKU-001", "Running Shoes",
			decimal.NewFromInt(2),
			valueobject.NewMoneyUSDFromFloat(100.00),
			decimal.NewFromInt(20),
		)

		require.NoError(t, err)
		assert.Equal(t, "80", item.UnitPriceDeducted.String())
		assert.Equal(t, "160", order.TotalAmount.String())
	})

	t.Run("rounds odd discounts to two decimals", func(t *testing.T) {
		order := createTestOrder(t)

		item, err := order.AddItem(
			uuid.New(), "SKU-002", "Socks",
			decimal.NewFromInt(1),
			valueobject.NewMoneyUSDFromFloat(9.99),
			decimal.NewFromInt(15),
		)

		require.NoError(t, err)
		// 9.99 * 0.85 = 8.4915 -> 8.49
		assert.Equal(t, "8.49", item.UnitPriceDeducted.String())
	})

	t.Run("zero discount keeps unit price", func(t *testing.T) {
		order := createTestOrder(t)

		item, err := order.AddItem(
			uuid.New(), "SKU-003", "Cap",
			decimal.NewFromInt(3),
			valueobject.NewMoneyUSDFromFloat(25.00),
			decimal.Zero,
		)

		require.NoError(t, err)
		assert.True(t, item.UnitPrice.Equal(item.UnitPriceDeducted))
		assert.Equal(t, "75", order.TotalAmount.String())
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := order.AddItem(
			uuid.New(), "SKU-004", "Cap",
			decimal.Zero,
			valueobject.NewMoneyUSDFromFloat(25.00),
			decimal.Zero,
		)

		require.Error(t, err)
	})

	t.Run("fails with discount above 100", func(t *testing.T) {
		order := createTestOrder(t)

		_, err := order.AddItem(
			uuid.New(), "SKU-005", "Cap",
			decimal.NewFromInt(1),
			valueobject.NewMoneyUSDFromFloat(25.00),
			decimal.NewFromInt(101),
		)

		require.Error(t, err)
	})

	t.Run("fails on a paid order", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(
			uuid.New(), "SKU-006", "Cap",
			decimal.NewFromInt(1),
			valueobject.NewMoneyUSDFromFloat(25.00),
			decimal.Zero,
		)
		require.NoError(t, err)
		require.NoError(t, order.MarkPaid())

		_, err = order.AddItem(
			uuid.New(), "SKU-007", "Hat",
			decimal.NewFromInt(1),
			valueobject.NewMoneyUSDFromFloat(25.00),
			decimal.Zero,
		)

		require.Error(t, err)
	})
}

func TestOrder_ApplyCredit(t *testing.T) {
	order := createTestOrder(t)
	_, err := order.AddItem(
		uuid.New(), "SKU-001", "Shoes",
		decimal.NewFromInt(1),
		valueobject.NewMoneyUSDFromFloat(100.00),
		decimal.Zero,
	)
	require.NoError(t, err)

	t.Run("applies credit within total", func(t *testing.T) {
		err := order.ApplyCredit(valueobject.NewMoneyUSDFromFloat(30.00))

		require.NoError(t, err)
		assert.Equal(t, "70", order.AmountDue().String())
	})

	t.Run("rejects credit above total", func(t *testing.T) {
		err := order.ApplyCredit(valueobject.NewMoneyUSDFromFloat(150.00))

		require.Error(t, err)
	})
}

func TestOrder_MarkPaid(t *testing.T) {
	t.Run("marks order and pending items paid", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(
			uuid.New(), "SKU-001", "Shoes",
			decimal.NewFromInt(1),
			valueobject.NewMoneyUSDFromFloat(100.00),
			decimal.Zero,
		)
		require.NoError(t, err)

		err = order.MarkPaid()

		require.NoError(t, err)
		assert.True(t, order.IsPaid())
		assert.NotNil(t, order.PaidAt)
		assert.Equal(t, ItemStatusPaid, order.Items[0].Status)
	})

	t.Run("fails on empty order", func(t *testing.T) {
		order := createTestOrder(t)

		err := order.MarkPaid()

		require.Error(t, err)
	})

	t.Run("fails on cancelled order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel())

		err := order.MarkPaid()

		require.Error(t, err)
	})
}

func TestOrder_RecordReturn(t *testing.T) {
	employeeID := uuid.New()

	setupPaidOrder := func(t *testing.T, productID uuid.UUID) *Order {
		t.Helper()
		order := createTestOrder(t)
		_, err := order.AddItem(
			productID, "SKU-100", "Running Shoes",
			decimal.NewFromInt(2),
			valueobject.NewMoneyUSDFromFloat(100.00),
			decimal.NewFromInt(20),
		)
		require.NoError(t, err)
		require.NoError(t, order.MarkPaid())
		return order
	}

	t.Run("appends a returned row and credits the discounted price", func(t *testing.T) {
		productID := uuid.New()
		order := setupPaidOrder(t, productID)

		item, credit, err := order.RecordReturn(productID, decimal.NewFromInt(2), "defective", employeeID)

		require.NoError(t, err)
		assert.Equal(t, ItemStatusReturned, item.Status)
		assert.Equal(t, "SKU-100", item.SKU)
		assert.Equal(t, "80", item.UnitPriceDeducted.String())
		assert.Equal(t, employeeID, item.EmployeeID)
		// 2 × (100 × 0.80) = 160.00
		assert.Equal(t, "160", credit.Amount().String())
	})

	t.Run("leaves the original row untouched", func(t *testing.T) {
		productID := uuid.New()
		order := setupPaidOrder(t, productID)
		originalID := order.Items[0].ID
		originalQty := order.Items[0].Quantity

		_, _, err := order.RecordReturn(productID, decimal.NewFromInt(1), "", employeeID)

		require.NoError(t, err)
		require.Len(t, order.Items, 2)
		assert.Equal(t, originalID, order.Items[0].ID)
		assert.Equal(t, ItemStatusPaid, order.Items[0].Status)
		assert.True(t, originalQty.Equal(order.Items[0].Quantity))
		assert.Len(t, order.ReturnedItems(), 1)
	})

	t.Run("fails when product was never sold on the order", func(t *testing.T) {
		order := setupPaidOrder(t, uuid.New())
		missing := uuid.New()

		_, _, err := order.RecordReturn(missing, decimal.NewFromInt(1), "", employeeID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No order detail found for order ID")
		assert.Contains(t, err.Error(), missing.String())
	})

	t.Run("fails when return quantity exceeds sold quantity", func(t *testing.T) {
		productID := uuid.New()
		order := setupPaidOrder(t, productID)

		_, _, err := order.RecordReturn(productID, decimal.NewFromInt(5), "", employeeID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Return quantity 5 exceeds available stock 2")
		assert.Len(t, order.Items, 1)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		productID := uuid.New()
		order := setupPaidOrder(t, productID)

		_, _, err := order.RecordReturn(productID, decimal.Zero, "", employeeID)

		require.Error(t, err)
	})

	t.Run("fails on a pending order", func(t *testing.T) {
		productID := uuid.New()
		order := createTestOrder(t)
		_, err := order.AddItem(
			productID, "SKU-100", "Running Shoes",
			decimal.NewFromInt(2),
			valueobject.NewMoneyUSDFromFloat(100.00),
			decimal.Zero,
		)
		require.NoError(t, err)

		_, _, err = order.RecordReturn(productID, decimal.NewFromInt(1), "", employeeID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot return items on a pending order")
		assert.Len(t, order.Items, 1)
	})

	t.Run("fails on a cancelled order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel())

		_, _, err := order.RecordReturn(uuid.New(), decimal.NewFromInt(1), "", employeeID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot return items on a cancelled order")
	})

	t.Run("return ceiling does not shrink after a prior return", func(t *testing.T) {
		// There is no cumulative-return bookkeeping. Each call checks the
		// original sale quantity, so a repeated submission appends again.
		productID := uuid.New()
		order := setupPaidOrder(t, productID)

		_, _, err := order.RecordReturn(productID, decimal.NewFromInt(2), "", employeeID)
		require.NoError(t, err)
		_, _, err = order.RecordReturn(productID, decimal.NewFromInt(2), "", employeeID)
		require.NoError(t, err)

		assert.Len(t, order.ReturnedItems(), 2)
	})

	t.Run("total amount ignores returned rows", func(t *testing.T) {
		productID := uuid.New()
		order := setupPaidOrder(t, productID)
		before := order.TotalAmount

		_, _, err := order.RecordReturn(productID, decimal.NewFromInt(1), "", employeeID)

		require.NoError(t, err)
		assert.True(t, before.Equal(order.TotalAmount))
	})
}
