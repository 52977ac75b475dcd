package partner

import (
	"context"

	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindSupplierByName finds a partner by exact name that acts as a
	// supplier (supplier rank > 0). Returns shared.ErrNotFound when no
	// such partner exists.
	FindSupplierByName(ctx context.Context, name string) (*Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error
}
