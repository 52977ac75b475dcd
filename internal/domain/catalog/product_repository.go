package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByDefaultCode finds a product by its exact internal reference.
	// Returns shared.ErrNotFound when no product matches.
	FindByDefaultCode(ctx context.Context, code string) (*Product, error)

	// FindBySKU finds a product by its marketplace SKU id.
	// Returns shared.ErrNotFound when no product matches.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
