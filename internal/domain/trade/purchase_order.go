package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/import1688/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	// PurchaseOrderStatusDraft is the state of freshly imported orders
	PurchaseOrderStatusDraft PurchaseOrderStatus = "draft"
	// PurchaseOrderStatusConfirmed means the order was confirmed with the supplier
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "confirmed"
	// PurchaseOrderStatusDone means the order has been fully received
	PurchaseOrderStatusDone PurchaseOrderStatus = "done"
	// PurchaseOrderStatusCancelled means the order was cancelled
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder is a draft procurement document created from an imported
// marketplace order. Origin keeps the marketplace order number (prefixed)
// so re-imports of the same sheet can be detected.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	Name         string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200)"`
	CurrencyName string              `gorm:"type:varchar(10);not null"`
	Origin       string              `gorm:"type:varchar(100);index"`
	Notes        string              `gorm:"type:text"`
	OrderDate    time.Time           `gorm:"not null"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Lines        []PurchaseOrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	AmountTotal  decimal.Decimal     `gorm:"type:decimal(14,4);not null"`
}

// PurchaseOrderLine is one product line on a purchase order. UnitPrice
// already includes the prorated share of the order's shipping fee.
type PurchaseOrderLine struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Description string          `gorm:"type:varchar(300);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(14,6);not null"`
	Taxes       string          `gorm:"type:varchar(50);not null;default:'[]'"`
	PlannedDate time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// NewPurchaseOrder creates a draft purchase order for the given supplier
func NewPurchaseOrder(name string, supplierID uuid.UUID, supplierName, currencyName string, orderDate time.Time) (*PurchaseOrder, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Purchase order name cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Purchase order supplier cannot be empty")
	}
	if currencyName == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Purchase order currency cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		CurrencyName:      currencyName,
		OrderDate:         orderDate,
		Status:            PurchaseOrderStatusDraft,
		AmountTotal:       decimal.Zero,
	}, nil
}

// AddLine appends a product line and recalculates the order total.
// Zero-quantity lines are accepted: marketplace exports sometimes carry
// fee-only or informational rows that must still appear on the order.
func (po *PurchaseOrder) AddLine(productID uuid.UUID, description string, quantity, unitPrice decimal.Decimal) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft orders")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Line product cannot be empty")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Line description cannot be empty")
	}
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Line quantity cannot be negative")
	}

	line := PurchaseOrderLine{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     po.GetID(),
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Taxes:       "[]",
		PlannedDate: po.OrderDate,
	}
	po.Lines = append(po.Lines, line)
	po.recalculateTotal()
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

// SetOrigin records the marketplace order reference on the order
func (po *PurchaseOrder) SetOrigin(origin string) {
	po.Origin = origin
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
}

// SetNotes replaces the free-text notes on the order
func (po *PurchaseOrder) SetNotes(notes string) {
	po.Notes = notes
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
}

// Confirm moves a draft order to confirmed
func (po *PurchaseOrder) Confirm() error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be confirmed")
	}
	if len(po.Lines) == 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot confirm an order without lines")
	}
	po.Status = PurchaseOrderStatusConfirmed
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

// Cancel cancels a draft or confirmed order
func (po *PurchaseOrder) Cancel() error {
	if po.Status == PurchaseOrderStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Completed orders cannot be cancelled")
	}
	po.Status = PurchaseOrderStatusCancelled
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

func (po *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, line := range po.Lines {
		total = total.Add(line.UnitPrice.Mul(line.Quantity))
	}
	po.AmountTotal = total
}
