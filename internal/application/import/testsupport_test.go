package importapp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/import1688/backend/internal/domain/bulk"
	"github.com/import1688/backend/internal/domain/catalog"
	"github.com/import1688/backend/internal/domain/currency"
	"github.com/import1688/backend/internal/domain/partner"
	"github.com/import1688/backend/internal/domain/shared"
	"github.com/import1688/backend/internal/domain/trade"
)

// In-memory collaborators for pipeline tests.

type memProductRepo struct {
	products []*catalog.Product
	saveErr  error
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.GetID() == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByDefaultCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.DefaultCode == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.products = append(r.products, product)
	return nil
}

type memSupplierRepo struct {
	suppliers []*partner.Supplier
	saveErr   error
}

func (r *memSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	for _, s := range r.suppliers {
		if s.GetID() == id {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplierRepo) FindSupplierByName(_ context.Context, name string) (*partner.Supplier, error) {
	for _, s := range r.suppliers {
		if s.Name == name && s.IsSupplier() {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.suppliers = append(r.suppliers, supplier)
	return nil
}

type memOrderRepo struct {
	orders  []*trade.PurchaseOrder
	saveErr error
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	for _, o := range r.orders {
		if o.GetID() == id {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindByOriginPrefix(_ context.Context, prefix string, page, pageSize int) (*trade.PurchaseOrderListResult, error) {
	var matched []*trade.PurchaseOrder
	for _, o := range r.orders {
		if strings.HasPrefix(o.Origin, prefix) {
			matched = append(matched, o)
		}
	}
	return &trade.PurchaseOrderListResult{
		Items:      matched,
		TotalCount: int64(len(matched)),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (r *memOrderRepo) NextName(_ context.Context) (string, error) {
	return fmt.Sprintf("PO%05d", len(r.orders)+1), nil
}

func (r *memOrderRepo) Save(_ context.Context, order *trade.PurchaseOrder) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.orders = append(r.orders, order)
	return nil
}

type memCurrencyRepo struct {
	currencies []*currency.Currency
}

func (r *memCurrencyRepo) FindByName(_ context.Context, name string) (*currency.Currency, error) {
	for _, c := range r.currencies {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCurrencyRepo) CompanyDefault(_ context.Context) (*currency.Currency, error) {
	for _, c := range r.currencies {
		if c.IsCompanyDefault {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCurrencyRepo) Save(_ context.Context, cur *currency.Currency) error {
	r.currencies = append(r.currencies, cur)
	return nil
}

type memRunRepo struct {
	runs []*bulk.ImportRun
}

func (r *memRunRepo) FindByID(_ context.Context, id uuid.UUID) (*bulk.ImportRun, error) {
	for _, run := range r.runs {
		if run.GetID() == id {
			return run, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRunRepo) FindAll(_ context.Context, page, pageSize int) (*bulk.ImportRunListResult, error) {
	return &bulk.ImportRunListResult{
		Items:      r.runs,
		TotalCount: int64(len(r.runs)),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (r *memRunRepo) Save(_ context.Context, run *bulk.ImportRun) error {
	for _, existing := range r.runs {
		if existing.GetID() == run.GetID() {
			return nil
		}
	}
	r.runs = append(r.runs, run)
	return nil
}
