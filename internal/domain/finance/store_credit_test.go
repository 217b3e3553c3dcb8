package finance

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnCredit(t *testing.T) {
	orderID := uuid.New()

	t.Run("creates an active return credit", func(t *testing.T) {
		credit, err := NewReturnCredit(orderID, valueobject.NewMoneyUSDFromFloat(160.00), "Walk-in", "return on ORD-1")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, credit.ID)
		assert.Equal(t, orderID, credit.OrderID)
		assert.Equal(t, "160", credit.CreditAmount.String())
		assert.Equal(t, CreditStatusActive, credit.Status)
		assert.Equal(t, CreditTypeReturn, credit.CreditType)
		require.NotNil(t, credit.CustomerName)
		assert.Equal(t, "Walk-in", *credit.CustomerName)
		assert.False(t, credit.IssuedAt.IsZero())
	})

	t.Run("empty customer name stays null", func(t *testing.T) {
		credit, err := NewReturnCredit(orderID, valueobject.NewMoneyUSDFromFloat(10.00), "", "")

		require.NoError(t, err)
		assert.Nil(t, credit.CustomerName)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		credit, err := NewReturnCredit(orderID, valueobject.ZeroUSD(), "", "")

		require.Error(t, err)
		assert.Nil(t, credit)
	})

	t.Run("fails with nil order ID", func(t *testing.T) {
		credit, err := NewReturnCredit(uuid.Nil, valueobject.NewMoneyUSDFromFloat(10.00), "", "")

		require.Error(t, err)
		assert.Nil(t, credit)
	})
}

func TestStoreCredit_Consume(t *testing.T) {
	t.Run("marks an active credit consumed", func(t *testing.T) {
		credit, err := NewReturnCredit(uuid.New(), valueobject.NewMoneyUSDFromFloat(50.00), "", "")
		require.NoError(t, err)
		redeemingOrder := uuid.New()

		err = credit.Consume(redeemingOrder)

		require.NoError(t, err)
		assert.Equal(t, CreditStatusConsumed, credit.Status)
		assert.NotNil(t, credit.ConsumedAt)
		require.NotNil(t, credit.ConsumedBy)
		assert.Equal(t, redeemingOrder, *credit.ConsumedBy)
		assert.False(t, credit.IsActive())
	})

	t.Run("fails when already consumed", func(t *testing.T) {
		credit, err := NewReturnCredit(uuid.New(), valueobject.NewMoneyUSDFromFloat(50.00), "", "")
		require.NoError(t, err)
		require.NoError(t, credit.Consume(uuid.New()))

		err = credit.Consume(uuid.New())

		require.Error(t, err)
	})
}
