package partner

import (
	"fmt"
	"time"

	"github.com/import1688/backend/internal/domain/shared"
)

// FallbackSupplierName is used when a spreadsheet row carries neither a
// company name nor a member name for the seller.
const FallbackSupplierName = "Unknown supplier"

// Supplier represents a trading partner that sells goods to us.
// Rank semantics follow the host convention: a partner with
// SupplierRank > 0 acts as a supplier, CustomerRank > 0 as a customer.
type Supplier struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(200);not null;index"`
	MemberName   string `gorm:"type:varchar(200)"` // Marketplace member/account name
	SupplierRank int    `gorm:"not null;default:0"`
	CustomerRank int    `gorm:"not null;default:0"`
	Comment      string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with the given display name
func NewSupplier(name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SupplierRank:      1,
		CustomerRank:      0,
	}, nil
}

// NewImportedSupplier creates a supplier from marketplace order data.
// The company name wins over the member name; both blank falls back to a
// placeholder so the order can still be materialized. An audit comment
// records where the record came from.
func NewImportedSupplier(companyName, memberName string) (*Supplier, error) {
	name := companyName
	if name == "" {
		name = memberName
	}
	if name == "" {
		name = FallbackSupplierName
	}

	supplier, err := NewSupplier(name)
	if err != nil {
		return nil, err
	}
	supplier.MemberName = memberName

	member := memberName
	if member == "" {
		member = "n/a"
	}
	supplier.Comment = fmt.Sprintf("Imported automatically from 1688\nMember name: %s", member)

	return supplier, nil
}

// IsSupplier returns true if this partner acts as a supplier
func (s *Supplier) IsSupplier() bool {
	return s.SupplierRank > 0
}

// Rename updates the supplier's display name
func (s *Supplier) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetComment replaces the free-text comment
func (s *Supplier) SetComment(comment string) {
	s.Comment = comment
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
