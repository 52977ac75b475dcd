package importapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/import1688/backend/internal/domain/bulk"
	"github.com/import1688/backend/internal/domain/catalog"
	"github.com/import1688/backend/internal/domain/currency"
	"github.com/import1688/backend/internal/domain/partner"
	"github.com/import1688/backend/internal/domain/shared"
	"github.com/import1688/backend/internal/domain/trade"
	"github.com/import1688/backend/internal/infrastructure/spreadsheet"
)

// Options configures an order import run
type Options struct {
	DefaultCurrency string // currency looked up for imported orders ("CNY")
	OriginPrefix    string // prefix stamped on purchase order origins ("1688-")
	HeaderRows      int    // leading spreadsheet rows to skip
}

// ImportResult is the outcome of one whole run
type ImportResult struct {
	RunID        uuid.UUID       `json:"run_id"`
	TotalOrders  int             `json:"total_orders"`
	Created      int             `json:"created"`
	Partial      int             `json:"partial"`
	Skipped      int             `json:"skipped"`
	Failed       int             `json:"failed"`
	CurrencyName string          `json:"currency"`
	Summary      string          `json:"summary"`
	Outcomes     []ImportOutcome `json:"outcomes"`
}

// OrderImportService runs the spreadsheet-to-purchase-order pipeline:
// decode, group, resolve, allocate, materialize, report. A run either
// fails as a whole before any order is touched (unreadable payload) or
// always reaches the report, however many orders failed individually.
type OrderImportService struct {
	suppliers  partner.SupplierRepository
	products   catalog.ProductRepository
	orders     trade.PurchaseOrderRepository
	currencies currency.CurrencyRepository
	runs       bulk.ImportRunRepository
	opts       Options
	logger     *zap.Logger
}

// NewOrderImportService creates a new OrderImportService
func NewOrderImportService(
	suppliers partner.SupplierRepository,
	products catalog.ProductRepository,
	orders trade.PurchaseOrderRepository,
	currencies currency.CurrencyRepository,
	runs bulk.ImportRunRepository,
	opts Options,
	logger *zap.Logger,
) *OrderImportService {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "CNY"
	}
	if opts.OriginPrefix == "" {
		opts.OriginPrefix = "1688-"
	}
	if opts.HeaderRows <= 0 {
		opts.HeaderRows = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderImportService{
		suppliers:  suppliers,
		products:   products,
		orders:     orders,
		currencies: currencies,
		runs:       runs,
		opts:       opts,
		logger:     logger,
	}
}

// Import processes one uploaded spreadsheet end to end
func (s *OrderImportService) Import(ctx context.Context, fileName string, data []byte, policy ResolverPolicy) (*ImportResult, error) {
	if len(data) == 0 {
		return nil, shared.NewDomainError("MISSING_FILE", "No spreadsheet was uploaded")
	}
	if policy == "" {
		policy = PolicyStrict
	}
	if !policy.IsValid() {
		return nil, shared.NewDomainError("INVALID_POLICY", fmt.Sprintf("Unknown resolver policy: %s", policy))
	}

	run, err := bulk.NewImportRun(fileName, int64(len(data)))
	if err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}

	workbook, err := spreadsheet.Decode(data)
	if err != nil {
		s.failRun(ctx, run, err)
		return nil, fmt.Errorf("import failed: %w", err)
	}

	aggregates := GroupRows(workbook.Rows(), s.opts.HeaderRows)

	currencyName, err := s.selectCurrency(ctx)
	if err != nil {
		s.failRun(ctx, run, err)
		return nil, fmt.Errorf("import failed: %w", err)
	}

	if err := run.StartProcessing(len(aggregates)); err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}

	var resolver ProductResolver
	if policy == PolicyLegacy {
		resolver = NewLegacyResolver(s.products)
	} else {
		resolver = NewStrictResolver(s.products)
	}
	materializer := NewOrderMaterializer(s.suppliers, s.orders, resolver, s.opts.OriginPrefix, s.logger)

	outcomes := make([]ImportOutcome, 0, len(aggregates))
	for _, agg := range aggregates {
		outcomes = append(outcomes, materializer.Materialize(ctx, agg, currencyName))
	}

	summary := Summarize(outcomes)

	result := &ImportResult{
		RunID:        run.GetID(),
		TotalOrders:  len(aggregates),
		CurrencyName: currencyName,
		Summary:      summary,
		Outcomes:     outcomes,
	}
	details := make([]bulk.OrderOutcomeDetail, 0, len(outcomes))
	for _, o := range outcomes {
		switch o.Status {
		case OutcomeSuccess:
			result.Created++
		case OutcomePartial:
			result.Partial++
		case OutcomeSkipped:
			result.Skipped++
		case OutcomeFailed:
			result.Failed++
		}
		details = append(details, bulk.OrderOutcomeDetail{
			OrderNo:      o.OrderNo,
			Status:       string(o.Status),
			PurchaseName: o.PurchaseName,
			Message:      o.Reason,
		})
	}

	if err := run.Complete(result.Created, result.Partial, result.Skipped, result.Failed, summary, details); err != nil {
		return nil, err
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("Import run finished",
		zap.String("run_id", run.GetID().String()),
		zap.Int("total", result.TotalOrders),
		zap.Int("created", result.Created),
		zap.Int("partial", result.Partial),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)

	return result, nil
}

// ImportBase64 decodes a base64 spreadsheet payload and imports it
func (s *OrderImportService) ImportBase64(ctx context.Context, fileName, encoded string, policy ResolverPolicy) (*ImportResult, error) {
	if encoded == "" {
		return nil, shared.NewDomainError("MISSING_FILE", "No spreadsheet was uploaded")
	}
	workbookBytes, err := spreadsheet.Base64Bytes(encoded)
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}
	return s.Import(ctx, fileName, workbookBytes, policy)
}

// GetRun returns one import run with its stored per-order results
func (s *OrderImportService) GetRun(ctx context.Context, id uuid.UUID) (*bulk.ImportRun, error) {
	return s.runs.FindByID(ctx, id)
}

// ListRuns returns import runs, newest first
func (s *OrderImportService) ListRuns(ctx context.Context, page, pageSize int) (*bulk.ImportRunListResult, error) {
	return s.runs.FindAll(ctx, page, pageSize)
}

// ListImportedOrders returns the purchase orders created by imports,
// i.e. orders whose origin carries the configured marketplace prefix.
func (s *OrderImportService) ListImportedOrders(ctx context.Context, page, pageSize int) (*trade.PurchaseOrderListResult, error) {
	return s.orders.FindByOriginPrefix(ctx, s.opts.OriginPrefix, page, pageSize)
}

// selectCurrency resolves the run currency: the configured default when
// the registry has it, the company default otherwise. A registry without
// either falls back to the configured name unresolved.
func (s *OrderImportService) selectCurrency(ctx context.Context) (string, error) {
	cur, err := s.currencies.FindByName(ctx, s.opts.DefaultCurrency)
	if err == nil {
		return cur.Name, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}

	def, err := s.currencies.CompanyDefault(ctx)
	if err == nil {
		return def.Name, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return "", err
	}
	return s.opts.DefaultCurrency, nil
}

func (s *OrderImportService) failRun(ctx context.Context, run *bulk.ImportRun, cause error) {
	if err := run.Fail(cause.Error()); err != nil {
		s.logger.Warn("Could not mark run as failed", zap.Error(err))
		return
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Warn("Could not persist failed run", zap.Error(err))
	}
}
