package importapp

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pq(price, qty string) PricedQuantity {
	return PricedQuantity{
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  decimal.RequireFromString(qty),
	}
}

func TestAllocateShipping(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		lines := []PricedQuantity{pq("10", "2"), pq("20", "1")}
		allocated := AllocateShipping(decimal.NewFromInt(4), lines)

		require.Len(t, allocated, 2)
		assert.True(t, allocated[0].Equal(decimal.RequireFromString("10.5")), "got %s", allocated[0])
		assert.True(t, allocated[1].Equal(decimal.NewFromInt(22)), "got %s", allocated[1])
	})

	t.Run("allocation conserves the fee", func(t *testing.T) {
		lines := []PricedQuantity{pq("3.33", "7"), pq("12.5", "2"), pq("0.99", "13")}
		fee := decimal.RequireFromString("17.25")
		allocated := AllocateShipping(fee, lines)

		delta := decimal.Zero
		for i, line := range lines {
			delta = delta.Add(allocated[i].Sub(line.UnitPrice).Mul(line.Quantity))
		}
		diff := delta.Sub(fee).Abs()
		assert.True(t, diff.LessThan(decimal.RequireFromString("0.0000001")), "fee drift %s", diff)
	})

	t.Run("zero fee leaves prices unchanged", func(t *testing.T) {
		lines := []PricedQuantity{pq("10", "2")}
		allocated := AllocateShipping(decimal.Zero, lines)
		assert.True(t, allocated[0].Equal(decimal.NewFromInt(10)))
	})

	t.Run("zero total leaves prices unchanged", func(t *testing.T) {
		lines := []PricedQuantity{pq("0", "5"), pq("10", "0")}
		allocated := AllocateShipping(decimal.NewFromInt(4), lines)
		assert.True(t, allocated[0].Equal(decimal.Zero))
		assert.True(t, allocated[1].Equal(decimal.NewFromInt(10)))
	})

	t.Run("zero quantity line absorbs no fee", func(t *testing.T) {
		lines := []PricedQuantity{pq("10", "2"), pq("20", "0")}
		allocated := AllocateShipping(decimal.NewFromInt(4), lines)

		// The zero-quantity line keeps its price and its fee share is lost.
		assert.True(t, allocated[1].Equal(decimal.NewFromInt(20)))
		assert.True(t, allocated[0].Equal(decimal.NewFromInt(12)), "got %s", allocated[0])
	})
}

func TestTotalAmount(t *testing.T) {
	lines := []PricedQuantity{pq("10", "2"), pq("20", "1")}
	assert.True(t, TotalAmount(lines).Equal(decimal.NewFromInt(40)))
	assert.True(t, TotalAmount(nil).IsZero())
}
