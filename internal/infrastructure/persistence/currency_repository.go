package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/import1688/backend/internal/domain/currency"
	"github.com/import1688/backend/internal/domain/shared"
)

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByName finds a currency by its ISO name
func (r *GormCurrencyRepository) FindByName(ctx context.Context, name string) (*currency.Currency, error) {
	var cur currency.Currency
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&cur).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cur, nil
}

// CompanyDefault returns the company default currency
func (r *GormCurrencyRepository) CompanyDefault(ctx context.Context) (*currency.Currency, error) {
	var cur currency.Currency
	if err := r.db.WithContext(ctx).
		Where("is_company_default = ?", true).
		First(&cur).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cur, nil
}

// Save creates or updates a currency entry. Conflicts on the unique name
// are resolved by keeping the existing row.
func (r *GormCurrencyRepository) Save(ctx context.Context, cur *currency.Currency) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(cur).Error
}
