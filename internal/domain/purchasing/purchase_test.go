package purchasing

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase("PUR-20250101-0001", uuid.New(), uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewPurchase(t *testing.T) {
	t.Run("creates purchase in ORDERED status", func(t *testing.T) {
		p := createTestPurchase(t)

		assert.Equal(t, PurchaseStatusOrdered, p.Status)
		assert.True(t, p.TotalCost.IsZero())
		assert.Empty(t, p.Items)
	})

	t.Run("fails with nil supplier ID", func(t *testing.T) {
		p, err := NewPurchase("PUR-1", uuid.Nil, uuid.New())

		require.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestPurchase_AddItem(t *testing.T) {
	t.Run("accumulates total cost", func(t *testing.T) {
		p := createTestPurchase(t)

		_, err := p.AddItem(uuid.New(), "SKU-001", "Shoes", decimal.NewFromInt(10), valueobject.NewMoneyUSDFromFloat(40.00))
		require.NoError(t, err)
		_, err = p.AddItem(uuid.New(), "SKU-002", "Socks", decimal.NewFromInt(20), valueobject.NewMoneyUSDFromFloat(2.50))
		require.NoError(t, err)

		assert.Equal(t, "450", p.TotalCost.String())
	})

	t.Run("fails with non-positive quantity", func(t *testing.T) {
		p := createTestPurchase(t)

		_, err := p.AddItem(uuid.New(), "SKU-001", "Shoes", decimal.Zero, valueobject.NewMoneyUSDFromFloat(40.00))

		require.Error(t, err)
	})

	t.Run("fails after receiving", func(t *testing.T) {
		p := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), "SKU-001", "Shoes", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(40.00))
		require.NoError(t, err)
		require.NoError(t, p.Receive())

		_, err = p.AddItem(uuid.New(), "SKU-002", "Socks", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(2.50))

		require.Error(t, err)
	})
}

func TestPurchase_Receive(t *testing.T) {
	t.Run("transitions ORDERED to RECEIVED", func(t *testing.T) {
		p := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), "SKU-001", "Shoes", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(40.00))
		require.NoError(t, err)

		err = p.Receive()

		require.NoError(t, err)
		assert.True(t, p.IsReceived())
		assert.NotNil(t, p.ReceivedAt)
	})

	t.Run("fails on an empty purchase", func(t *testing.T) {
		p := createTestPurchase(t)

		err := p.Receive()

		require.Error(t, err)
	})

	t.Run("fails when already received", func(t *testing.T) {
		p := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), "SKU-001", "Shoes", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(40.00))
		require.NoError(t, err)
		require.NoError(t, p.Receive())

		err = p.Receive()

		require.Error(t, err)
	})
}

func TestPurchase_Cancel(t *testing.T) {
	t.Run("cancels an ordered purchase", func(t *testing.T) {
		p := createTestPurchase(t)

		err := p.Cancel()

		require.NoError(t, err)
		assert.Equal(t, PurchaseStatusCancelled, p.Status)
		assert.NotNil(t, p.CancelledAt)
	})

	t.Run("fails on a received purchase", func(t *testing.T) {
		p := createTestPurchase(t)
		_, err := p.AddItem(uuid.New(), "SKU-001", "Shoes", decimal.NewFromInt(1), valueobject.NewMoneyUSDFromFloat(40.00))
		require.NoError(t, err)
		require.NoError(t, p.Receive())

		err = p.Cancel()

		require.Error(t, err)
	})
}
