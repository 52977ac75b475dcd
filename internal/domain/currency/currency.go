package currency

import (
	"github.com/import1688/backend/internal/domain/shared"
)

// Currency is an entry in the host currency registry (ISO 4217 name plus
// display symbol). One entry is flagged as the company default; order
// import falls back to it when the configured currency is missing.
type Currency struct {
	shared.BaseEntity
	Name             string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Symbol           string `gorm:"type:varchar(10)"`
	IsCompanyDefault bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Currency) TableName() string {
	return "currencies"
}

// NewCurrency creates a new currency registry entry
func NewCurrency(name, symbol string) (*Currency, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Currency name cannot be empty")
	}

	return &Currency{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Symbol:     symbol,
	}, nil
}
