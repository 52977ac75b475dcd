package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/import1688/backend/internal/domain/shared"
	"github.com/import1688/backend/internal/domain/trade"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its lines by ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOriginPrefix returns purchase orders whose origin starts with
// the given prefix, newest first
func (r *GormPurchaseOrderRepository) FindByOriginPrefix(ctx context.Context, prefix string, page, pageSize int) (*trade.PurchaseOrderListResult, error) {
	query := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("origin LIKE ?", prefix+"%")

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, err
	}

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		query = query.Offset(offset).Limit(pageSize)
	}
	query = query.Order("created_at DESC")

	var orders []*trade.PurchaseOrder
	if err := query.Preload("Lines").Find(&orders).Error; err != nil {
		return nil, err
	}

	return &trade.PurchaseOrderListResult{
		Items:      orders,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// NextName reserves the next sequential purchase order name
func (r *GormPurchaseOrderRepository) NextName(ctx context.Context) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PO%05d", count+1), nil
}

// Save creates or updates a purchase order together with its lines
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}
