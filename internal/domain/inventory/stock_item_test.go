package inventory

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStockItem(t *testing.T) *StockItem {
	t.Helper()
	item, err := NewStockItem(uuid.New(), uuid.New())
	require.NoError(t, err)
	return item
}

func TestNewStockItem(t *testing.T) {
	branchID := uuid.New()
	productID := uuid.New()

	t.Run("creates stock item successfully", func(t *testing.T) {
		item, err := NewStockItem(branchID, productID)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, branchID, item.BranchID)
		assert.Equal(t, productID, item.ProductID)
		assert.True(t, item.Quantity.IsZero())
	})

	t.Run("fails with nil branch ID", func(t *testing.T) {
		item, err := NewStockItem(uuid.Nil, productID)

		require.Error(t, err)
		assert.Nil(t, item)
	})

	t.Run("fails with nil product ID", func(t *testing.T) {
		item, err := NewStockItem(branchID, uuid.Nil)

		require.Error(t, err)
		assert.Nil(t, item)
	})
}

func TestStockItem_Increase(t *testing.T) {
	t.Run("increases quantity", func(t *testing.T) {
		item := createTestStockItem(t)

		err := item.Increase(decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, "10", item.Quantity.String())
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		item := createTestStockItem(t)

		err := item.Increase(decimal.Zero)

		require.Error(t, err)
	})
}

func TestStockItem_Decrease(t *testing.T) {
	t.Run("decreases quantity", func(t *testing.T) {
		item := createTestStockItem(t)
		require.NoError(t, item.Increase(decimal.NewFromInt(10)))

		err := item.Decrease(decimal.NewFromInt(4))

		require.NoError(t, err)
		assert.Equal(t, "6", item.Quantity.String())
	})

	t.Run("fails when quantity would go negative", func(t *testing.T) {
		item := createTestStockItem(t)
		require.NoError(t, item.Increase(decimal.NewFromInt(3)))

		err := item.Decrease(decimal.NewFromInt(5))

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, "3", item.Quantity.String())
	})

	t.Run("allows draining to exactly zero", func(t *testing.T) {
		item := createTestStockItem(t)
		require.NoError(t, item.Increase(decimal.NewFromInt(5)))

		err := item.Decrease(decimal.NewFromInt(5))

		require.NoError(t, err)
		assert.True(t, item.Quantity.IsZero())
	})
}

func TestStockItem_AdjustTo(t *testing.T) {
	t.Run("returns signed delta when counting down", func(t *testing.T) {
		item := createTestStockItem(t)
		require.NoError(t, item.Increase(decimal.NewFromInt(10)))

		delta, err := item.AdjustTo(decimal.NewFromInt(7))

		require.NoError(t, err)
		assert.Equal(t, "-3", delta.String())
		assert.Equal(t, "7", item.Quantity.String())
	})

	t.Run("returns signed delta when counting up", func(t *testing.T) {
		item := createTestStockItem(t)
		require.NoError(t, item.Increase(decimal.NewFromInt(10)))

		delta, err := item.AdjustTo(decimal.NewFromInt(12))

		require.NoError(t, err)
		assert.Equal(t, "2", delta.String())
	})

	t.Run("fails with negative count", func(t *testing.T) {
		item := createTestStockItem(t)

		_, err := item.AdjustTo(decimal.NewFromInt(-1))

		require.Error(t, err)
	})
}

func TestStockItem_IsBelowReorderLevel(t *testing.T) {
	item := createTestStockItem(t)
	require.NoError(t, item.Increase(decimal.NewFromInt(5)))

	t.Run("false when no reorder level set", func(t *testing.T) {
		assert.False(t, item.IsBelowReorderLevel())
	})

	t.Run("true at or below the threshold", func(t *testing.T) {
		require.NoError(t, item.SetReorderLevel(decimal.NewFromInt(5)))
		assert.True(t, item.IsBelowReorderLevel())
	})

	t.Run("false above the threshold", func(t *testing.T) {
		require.NoError(t, item.SetReorderLevel(decimal.NewFromInt(2)))
		assert.False(t, item.IsBelowReorderLevel())
	})
}

func TestNewStockMovement(t *testing.T) {
	employeeID := uuid.New()

	t.Run("records balances around a decrease", func(t *testing.T) {
		item := createTestStockItem(t)
		require.NoError(t, item.Increase(decimal.NewFromInt(10)))
		before := item.Quantity
		require.NoError(t, item.Decrease(decimal.NewFromInt(4)))

		mv, err := NewStockMovement(item, MovementTypeDamage, decimal.NewFromInt(4), before, "", "", employeeID, "water damage")

		require.NoError(t, err)
		assert.Equal(t, "10", mv.BalanceBefore.String())
		assert.Equal(t, "6", mv.BalanceAfter.String())
		assert.Equal(t, MovementTypeDamage, mv.MovementType)
		assert.Equal(t, employeeID, mv.EmployeeID)
	})

	t.Run("fails with invalid movement type", func(t *testing.T) {
		item := createTestStockItem(t)

		_, err := NewStockMovement(item, MovementType("BOGUS"), decimal.NewFromInt(1), decimal.Zero, "", "", employeeID, "")

		require.Error(t, err)
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		item := createTestStockItem(t)

		_, err := NewStockMovement(item, MovementTypeIntake, decimal.Zero, decimal.Zero, "", "", employeeID, "")

		require.Error(t, err)
	})
}

func TestMovementType_Direction(t *testing.T) {
	assert.True(t, MovementTypeIntake.IsIncrease())
	assert.True(t, MovementTypeTransferIn.IsIncrease())
	assert.True(t, MovementTypeTransferOut.IsDecrease())
	assert.True(t, MovementTypeDamage.IsDecrease())
	assert.True(t, MovementTypeStockOut.IsDecrease())
	assert.True(t, MovementTypeSale.IsDecrease())
}
