package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/import1688/backend/internal/domain/bulk"
	"github.com/import1688/backend/internal/domain/catalog"
	"github.com/import1688/backend/internal/domain/currency"
	"github.com/import1688/backend/internal/domain/partner"
	"github.com/import1688/backend/internal/domain/shared"
	"github.com/import1688/backend/internal/domain/trade"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&partner.Supplier{},
		&catalog.Product{},
		&currency.Currency{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderLine{},
		&bulk.ImportRun{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestGormSupplierRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewImportedSupplier("Shenzhen Cable Co", "szcable")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, supplier))

	t.Run("find by name scoped to suppliers", func(t *testing.T) {
		found, err := repo.FindSupplierByName(ctx, "Shenzhen Cable Co")
		require.NoError(t, err)
		assert.Equal(t, supplier.GetID(), found.GetID())
		assert.True(t, found.IsSupplier())
	})

	t.Run("customers are not matched", func(t *testing.T) {
		customer, err := partner.NewImportedSupplier("Pure Customer", "")
		require.NoError(t, err)
		customer.SupplierRank = 0
		require.NoError(t, repo.Save(ctx, customer))

		_, err = repo.FindSupplierByName(ctx, "Pure Customer")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing name maps to not found", func(t *testing.T) {
		_, err := repo.FindSupplierByName(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product, err := catalog.NewProduct("USB Cable 1m", "USB-CABLE-1M")
	require.NoError(t, err)
	product.SetSKU("sku-123456")
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByDefaultCode(ctx, "USB-CABLE-1M")
	require.NoError(t, err)
	assert.Equal(t, product.GetID(), found.GetID())

	bySKU, err := repo.FindBySKU(ctx, "sku-123456")
	require.NoError(t, err)
	assert.Equal(t, product.GetID(), bySKU.GetID())

	_, err = repo.FindByDefaultCode(ctx, "MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCurrencyRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCurrencyRepository(db)
	ctx := context.Background()

	cny, err := currency.NewCurrency("CNY", "¥")
	require.NoError(t, err)
	cny.IsCompanyDefault = true
	require.NoError(t, repo.Save(ctx, cny))

	t.Run("find by name", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "CNY")
		require.NoError(t, err)
		assert.Equal(t, "¥", found.Symbol)
	})

	t.Run("company default", func(t *testing.T) {
		found, err := repo.CompanyDefault(ctx)
		require.NoError(t, err)
		assert.Equal(t, "CNY", found.Name)
	})

	t.Run("save is idempotent on name", func(t *testing.T) {
		again, err := currency.NewCurrency("CNY", "元")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, again))

		found, err := repo.FindByName(ctx, "CNY")
		require.NoError(t, err)
		assert.Equal(t, "¥", found.Symbol)
	})
}

func TestGormPurchaseOrderRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	supplier, err := partner.NewImportedSupplier("Shenzhen Cable Co", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)

	product, err := catalog.NewProduct("Widget", "WIDGET")
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	t.Run("next name is sequential", func(t *testing.T) {
		name, err := repo.NextName(ctx)
		require.NoError(t, err)
		assert.Equal(t, "PO00001", name)
	})

	t.Run("save and reload with lines", func(t *testing.T) {
		order, err := trade.NewPurchaseOrder("PO00001", supplier.GetID(), supplier.Name, "CNY", time.Now())
		require.NoError(t, err)
		order.SetOrigin("1688-2024031500001")
		require.NoError(t, order.AddLine(product.GetID(), "Widget", decimal.NewFromInt(2), decimal.RequireFromString("10.5")))
		require.NoError(t, repo.Save(ctx, order))

		found, err := repo.FindByID(ctx, order.GetID())
		require.NoError(t, err)
		require.Len(t, found.Lines, 1)
		assert.True(t, found.AmountTotal.Equal(decimal.NewFromInt(21)))

		name, err := repo.NextName(ctx)
		require.NoError(t, err)
		assert.Equal(t, "PO00002", name)
	})

	t.Run("list by origin prefix", func(t *testing.T) {
		manual, err := trade.NewPurchaseOrder("PO00002", supplier.GetID(), supplier.Name, "CNY", time.Now())
		require.NoError(t, err)
		manual.SetOrigin("manual entry")
		require.NoError(t, repo.Save(ctx, manual))

		list, err := repo.FindByOriginPrefix(ctx, "1688-", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.TotalCount)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "1688-2024031500001", list.Items[0].Origin)
		require.Len(t, list.Items[0].Lines, 1)
	})

	t.Run("prefix without matches yields empty page", func(t *testing.T) {
		list, err := repo.FindByOriginPrefix(ctx, "taobao-", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), list.TotalCount)
		assert.Empty(t, list.Items)
	})
}

func TestGormImportRunRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormImportRunRepository(db)
	ctx := context.Background()

	run, err := bulk.NewImportRun("orders.xlsx", 2048)
	require.NoError(t, err)
	require.NoError(t, run.StartProcessing(2))
	details := []bulk.OrderOutcomeDetail{
		{OrderNo: "2024031500001", Status: "created", PurchaseName: "PO00001"},
		{OrderNo: "2024031500002", Status: "failed", Message: "invalid quantity"},
	}
	require.NoError(t, run.Complete(1, 0, 0, 1, "Created 1 purchase order", details))
	require.NoError(t, repo.Save(ctx, run))

	found, err := repo.FindByID(ctx, run.GetID())
	require.NoError(t, err)
	assert.True(t, found.IsDone())
	require.Len(t, found.OutcomeDetails, 2)
	assert.Equal(t, "invalid quantity", found.OutcomeDetails[1].Message)

	list, err := repo.FindAll(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
}
