package trade

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseOrderListResult represents a paginated list of purchase orders
type PurchaseOrderListResult struct {
	Items      []*PurchaseOrder
	TotalCount int64
	Page       int
	PageSize   int
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order (with its lines) by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOriginPrefix returns purchase orders whose origin reference
	// starts with the given prefix, newest first. A prefix without
	// matches yields an empty page, not an error.
	FindByOriginPrefix(ctx context.Context, prefix string, page, pageSize int) (*PurchaseOrderListResult, error)

	// NextName reserves the next sequential order name (e.g. "PO00042")
	NextName(ctx context.Context) (string, error)

	// Save creates or updates a purchase order together with its lines
	Save(ctx context.Context, order *PurchaseOrder) error
}
