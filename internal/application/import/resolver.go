package importapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/import1688/backend/internal/domain/catalog"
	"github.com/import1688/backend/internal/domain/shared"
)

// ResolutionResult is the tagged outcome of a catalog lookup: either a
// product or a reason why none matched, never both.
type ResolutionResult struct {
	Product *catalog.Product
	Reason  string
}

// Found reports whether the lookup matched a catalog entry
func (r ResolutionResult) Found() bool {
	return r.Product != nil
}

// ProductResolver maps a spreadsheet line to a catalog entry. A NotFound
// result is a normal outcome; the error return is reserved for
// infrastructure failures.
type ProductResolver interface {
	Resolve(ctx context.Context, line LineItem) (ResolutionResult, error)
}

// ResolverPolicy selects how unknown product references are handled
type ResolverPolicy string

const (
	// PolicyStrict requires the reference column to match an existing
	// catalog entry and never creates products.
	PolicyStrict ResolverPolicy = "strict"
	// PolicyLegacy looks up by product code then SKU id and auto-creates
	// a catalog entry when neither matches.
	PolicyLegacy ResolverPolicy = "legacy"
)

// IsValid checks if the policy is valid
func (p ResolverPolicy) IsValid() bool {
	return p == PolicyStrict || p == PolicyLegacy
}

// StrictResolver resolves lines by the internal reference column only
type StrictResolver struct {
	products catalog.ProductRepository
}

// NewStrictResolver creates a new StrictResolver
func NewStrictResolver(products catalog.ProductRepository) *StrictResolver {
	return &StrictResolver{products: products}
}

// Resolve performs an exact lookup by the line's external reference
func (r *StrictResolver) Resolve(ctx context.Context, line LineItem) (ResolutionResult, error) {
	ref := line.ProductRef
	if ref == "" {
		return ResolutionResult{Reason: "product reference column is empty, the line must be matched manually"}, nil
	}

	product, err := r.products.FindByDefaultCode(ctx, ref)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ResolutionResult{Reason: fmt.Sprintf("no product with internal reference %q, create it first or fix the reference", ref)}, nil
		}
		return ResolutionResult{}, err
	}
	return ResolutionResult{Product: product}, nil
}

// LegacyResolver resolves by product code with a SKU fallback and
// creates missing catalog entries instead of skipping lines.
type LegacyResolver struct {
	products catalog.ProductRepository

	codeSeqMu   sync.Mutex
	codeSeqDate string
	codeSeqNum  int64
}

// NewLegacyResolver creates a new LegacyResolver
func NewLegacyResolver(products catalog.ProductRepository) *LegacyResolver {
	return &LegacyResolver{products: products}
}

// Resolve looks up by product code, then SKU id, then creates a new
// catalog entry. It never returns a NotFound result.
func (r *LegacyResolver) Resolve(ctx context.Context, line LineItem) (ResolutionResult, error) {
	if line.ProductCode != "" {
		product, err := r.products.FindByDefaultCode(ctx, line.ProductCode)
		if err == nil {
			return ResolutionResult{Product: product}, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return ResolutionResult{}, err
		}
	}

	if line.SKUID != "" {
		product, err := r.products.FindBySKU(ctx, line.SKUID)
		if err == nil {
			return ResolutionResult{Product: product}, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return ResolutionResult{}, err
		}
	}

	code := line.ProductCode
	if code == "" {
		code = line.SKUID
	}
	if code == "" {
		code = r.nextGeneratedCode()
	}

	product, err := catalog.NewProduct(line.ProductName, code)
	if err != nil {
		return ResolutionResult{}, err
	}
	if line.SKUID != "" {
		product.SetSKU(line.SKUID)
	}
	if desc := describeLine(line); desc != "" {
		product.SetDescription(desc)
	}

	if err := r.products.Save(ctx, product); err != nil {
		return ResolutionResult{}, err
	}
	return ResolutionResult{Product: product}, nil
}

// nextGeneratedCode produces a daily-sequential fallback internal
// reference for lines that carry neither a product code nor a SKU id.
func (r *LegacyResolver) nextGeneratedCode() string {
	r.codeSeqMu.Lock()
	defer r.codeSeqMu.Unlock()

	today := time.Now().Format("20060102")
	if r.codeSeqDate != today {
		r.codeSeqDate = today
		r.codeSeqNum = 0
	}
	r.codeSeqNum++
	return fmt.Sprintf("PRD-%s-%04d", today, r.codeSeqNum)
}

// describeLine assembles the catalog description from model and SKU
func describeLine(line LineItem) string {
	var parts []string
	if line.Model != "" {
		parts = append(parts, fmt.Sprintf("Model: %s", line.Model))
	}
	if line.SKUID != "" {
		parts = append(parts, fmt.Sprintf("SKU ID: %s", line.SKUID))
	}
	return strings.Join(parts, "\n")
}
