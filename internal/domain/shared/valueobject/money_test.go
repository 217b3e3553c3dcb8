package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(99.95), USD)

		require.NoError(t, err)
		assert.Equal(t, "99.95", m.Amount().String())
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), Currency(""))

		require.Error(t, err)
	})

	t.Run("parses from string", func(t *testing.T) {
		m, err := NewMoneyFromString("12.50", USD)

		require.NoError(t, err)
		assert.Equal(t, "12.5", m.Amount().String())
	})

	t.Run("rejects malformed string", func(t *testing.T) {
		_, err := NewMoneyFromString("abc", USD)

		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyUSDFromFloat(10.00)
	b := NewMoneyUSDFromFloat(2.50)

	t.Run("adds same currency", func(t *testing.T) {
		sum, err := a.Add(b)

		require.NoError(t, err)
		assert.Equal(t, "12.5", sum.Amount().String())
	})

	t.Run("subtracts same currency", func(t *testing.T) {
		diff, err := a.Sub(b)

		require.NoError(t, err)
		assert.Equal(t, "7.5", diff.Amount().String())
	})

	t.Run("rejects mismatched currencies", func(t *testing.T) {
		other := Zero(EUR)

		_, err := a.Add(other)

		require.Error(t, err)
	})

	t.Run("multiplies by a factor", func(t *testing.T) {
		m := b.Mul(decimal.NewFromInt(3))

		assert.Equal(t, "7.5", m.Amount().String())
	})

	t.Run("rounds to cents", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(3.333).Round(2)

		assert.Equal(t, "3.33", m.Amount().String())
	})
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(0.01).IsPositive())
	assert.True(t, NewMoneyUSD(decimal.NewFromInt(-1)).IsNegative())
	less, err := NewMoneyUSDFromFloat(1).LessThan(NewMoneyUSDFromFloat(2))
	assert.NoError(t, err)
	assert.True(t, less)
	assert.True(t, NewMoneyUSDFromFloat(5).Equal(NewMoneyUSD(decimal.NewFromInt(5))))
}

func TestMoney_JSON(t *testing.T) {
	m := NewMoneyUSDFromFloat(42.50)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))
}
