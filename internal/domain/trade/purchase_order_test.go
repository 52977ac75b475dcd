package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder("PO00001", uuid.New(), "Shenzhen Cable Co", "CNY", time.Now())
	require.NoError(t, err)
	return po
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		po := newTestOrder(t)
		assert.Equal(t, PurchaseOrderStatusDraft, po.Status)
		assert.True(t, po.AmountTotal.IsZero())
		assert.Empty(t, po.Lines)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := NewPurchaseOrder("", uuid.New(), "Shenzhen Cable Co", "CNY", time.Now())
		assert.Error(t, err)
	})

	t.Run("missing supplier is rejected", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO00001", uuid.Nil, "Shenzhen Cable Co", "CNY", time.Now())
		assert.Error(t, err)
	})

	t.Run("empty currency is rejected", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO00001", uuid.New(), "Shenzhen Cable Co", "", time.Now())
		assert.Error(t, err)
	})
}

func TestPurchaseOrderAddLine(t *testing.T) {
	t.Run("total is recalculated per line", func(t *testing.T) {
		po := newTestOrder(t)

		err := po.AddLine(uuid.New(), "Widget", decimal.NewFromInt(2), decimal.RequireFromString("10.5"))
		require.NoError(t, err)
		err = po.AddLine(uuid.New(), "Gadget", decimal.NewFromInt(1), decimal.NewFromInt(22))
		require.NoError(t, err)

		assert.Len(t, po.Lines, 2)
		assert.True(t, po.AmountTotal.Equal(decimal.NewFromInt(43)), "got %s", po.AmountTotal)
	})

	t.Run("zero quantity line is accepted", func(t *testing.T) {
		po := newTestOrder(t)
		err := po.AddLine(uuid.New(), "Fee-only row", decimal.Zero, decimal.NewFromInt(5))
		require.NoError(t, err)
		assert.True(t, po.AmountTotal.IsZero())
	})

	t.Run("negative quantity is rejected", func(t *testing.T) {
		po := newTestOrder(t)
		err := po.AddLine(uuid.New(), "Widget", decimal.NewFromInt(-1), decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("taxes are cleared on new lines", func(t *testing.T) {
		po := newTestOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))
		assert.Equal(t, "[]", po.Lines[0].Taxes)
		assert.Equal(t, po.OrderDate, po.Lines[0].PlannedDate)
	})

	t.Run("lines cannot be added after confirmation", func(t *testing.T) {
		po := newTestOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))
		require.NoError(t, po.Confirm())

		err := po.AddLine(uuid.New(), "Gadget", decimal.NewFromInt(1), decimal.NewFromInt(20))
		assert.Error(t, err)
	})
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	t.Run("confirm requires lines", func(t *testing.T) {
		po := newTestOrder(t)
		assert.Error(t, po.Confirm())
	})

	t.Run("draft to confirmed to cancelled", func(t *testing.T) {
		po := newTestOrder(t)
		require.NoError(t, po.AddLine(uuid.New(), "Widget", decimal.NewFromInt(1), decimal.NewFromInt(10)))

		require.NoError(t, po.Confirm())
		assert.Equal(t, PurchaseOrderStatusConfirmed, po.Status)

		require.NoError(t, po.Cancel())
		assert.Equal(t, PurchaseOrderStatusCancelled, po.Status)
	})
}

func TestPurchaseOrderOrigin(t *testing.T) {
	po := newTestOrder(t)
	po.SetOrigin("1688-2024031500001")
	po.SetNotes("Seller: Shenzhen Cable Co")

	assert.Equal(t, "1688-2024031500001", po.Origin)
	assert.Contains(t, po.Notes, "Shenzhen Cable Co")
}
