package currency

import "context"

// CurrencyRepository defines the interface for the host currency registry
type CurrencyRepository interface {
	// FindByName finds a currency by its ISO name (e.g. "CNY").
	// Returns shared.ErrNotFound when the registry has no such entry.
	FindByName(ctx context.Context, name string) (*Currency, error)

	// CompanyDefault returns the company default currency.
	CompanyDefault(ctx context.Context) (*Currency, error)

	// Save creates or updates a currency entry
	Save(ctx context.Context, currency *Currency) error
}
