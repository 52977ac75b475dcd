package catalog

import (
	"time"

	"github.com/import1688/backend/internal/domain/shared"
)

// Product represents a catalog entry that purchase order lines refer to.
// DefaultCode is the internal reference used for exact lookups during
// order import.
type Product struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	DefaultCode string `gorm:"type:varchar(100);uniqueIndex"` // Internal reference
	SKU         string `gorm:"type:varchar(100);index"`       // Marketplace SKU id
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with the given name and internal reference
func NewProduct(name, defaultCode string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if defaultCode == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product internal reference cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		DefaultCode:       defaultCode,
	}, nil
}

// SetSKU sets the marketplace SKU id
func (p *Product) SetSKU(sku string) {
	p.SKU = sku
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetDescription sets the free-text description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
