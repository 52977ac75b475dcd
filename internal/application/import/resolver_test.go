package importapp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/import1688/backend/internal/domain/catalog"
)

func seedProduct(t *testing.T, repo *memProductRepo, name, code, sku string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, code)
	require.NoError(t, err)
	if sku != "" {
		p.SetSKU(sku)
	}
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestStrictResolver(t *testing.T) {
	repo := &memProductRepo{}
	widget := seedProduct(t, repo, "Widget", "WIDGET", "")
	resolver := NewStrictResolver(repo)
	ctx := context.Background()

	t.Run("matches by reference", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, LineItem{ProductName: "Widget", ProductRef: "WIDGET"})
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, widget.GetID(), result.Product.GetID())
	})

	t.Run("blank reference is not found", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, LineItem{ProductName: "Widget"})
		require.NoError(t, err)
		assert.False(t, result.Found())
		assert.Contains(t, result.Reason, "reference column is empty")
	})

	t.Run("unknown reference is not found", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, LineItem{ProductName: "Widget", ProductRef: "NOPE"})
		require.NoError(t, err)
		assert.False(t, result.Found())
		assert.Contains(t, result.Reason, `"NOPE"`)
	})

	t.Run("never creates products", func(t *testing.T) {
		before := len(repo.products)
		_, err := resolver.Resolve(ctx, LineItem{ProductName: "New Thing", ProductRef: "NEW"})
		require.NoError(t, err)
		assert.Equal(t, before, len(repo.products))
	})
}

func TestLegacyResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("matches by product code", func(t *testing.T) {
		repo := &memProductRepo{}
		existing := seedProduct(t, repo, "Widget", "W-1", "")
		resolver := NewLegacyResolver(repo)

		result, err := resolver.Resolve(ctx, LineItem{ProductName: "Widget", ProductCode: "W-1"})
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, existing.GetID(), result.Product.GetID())
	})

	t.Run("falls back to SKU", func(t *testing.T) {
		repo := &memProductRepo{}
		existing := seedProduct(t, repo, "Widget", "W-1", "sku-9")
		resolver := NewLegacyResolver(repo)

		result, err := resolver.Resolve(ctx, LineItem{ProductName: "Widget", ProductCode: "other", SKUID: "sku-9"})
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, existing.GetID(), result.Product.GetID())
	})

	t.Run("creates with derived code and description", func(t *testing.T) {
		repo := &memProductRepo{}
		resolver := NewLegacyResolver(repo)

		result, err := resolver.Resolve(ctx, LineItem{
			ProductName: "USB Cable 1m",
			ProductCode: "USB-1M",
			Model:       "A1",
			SKUID:       "sku-77",
		})
		require.NoError(t, err)
		require.True(t, result.Found())
		assert.Equal(t, "USB-1M", result.Product.DefaultCode)
		assert.Equal(t, "sku-77", result.Product.SKU)
		assert.Contains(t, result.Product.Description, "Model: A1")
		assert.Contains(t, result.Product.Description, "SKU ID: sku-77")
		assert.Len(t, repo.products, 1)
	})

	t.Run("generates sequential codes when nothing is derivable", func(t *testing.T) {
		repo := &memProductRepo{}
		resolver := NewLegacyResolver(repo)

		first, err := resolver.Resolve(ctx, LineItem{ProductName: "Mystery A"})
		require.NoError(t, err)
		second, err := resolver.Resolve(ctx, LineItem{ProductName: "Mystery B"})
		require.NoError(t, err)

		today := time.Now().Format("20060102")
		assert.Equal(t, fmt.Sprintf("PRD-%s-0001", today), first.Product.DefaultCode)
		assert.Equal(t, fmt.Sprintf("PRD-%s-0002", today), second.Product.DefaultCode)
	})

	t.Run("never reports not found", func(t *testing.T) {
		repo := &memProductRepo{}
		resolver := NewLegacyResolver(repo)

		result, err := resolver.Resolve(ctx, LineItem{ProductName: "Anything"})
		require.NoError(t, err)
		assert.True(t, result.Found())
	})
}
