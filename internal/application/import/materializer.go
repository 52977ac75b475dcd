package importapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/import1688/backend/internal/domain/partner"
	"github.com/import1688/backend/internal/domain/shared"
	"github.com/import1688/backend/internal/domain/trade"
)

// OrderMaterializer turns one order aggregate into a purchase order.
// Each aggregate is processed in isolation: any error or panic while
// materializing it is captured as a Failed outcome and never aborts the
// remaining orders of the run.
type OrderMaterializer struct {
	suppliers    partner.SupplierRepository
	orders       trade.PurchaseOrderRepository
	resolver     ProductResolver
	originPrefix string
	logger       *zap.Logger
}

// NewOrderMaterializer creates a new OrderMaterializer
func NewOrderMaterializer(
	suppliers partner.SupplierRepository,
	orders trade.PurchaseOrderRepository,
	resolver ProductResolver,
	originPrefix string,
	logger *zap.Logger,
) *OrderMaterializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderMaterializer{
		suppliers:    suppliers,
		orders:       orders,
		resolver:     resolver,
		originPrefix: originPrefix,
		logger:       logger,
	}
}

// Materialize processes one aggregate and classifies the result
func (m *OrderMaterializer) Materialize(ctx context.Context, agg *OrderAggregate, currencyName string) (outcome ImportOutcome) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic while materializing order",
				zap.String("order_no", agg.OrderNo),
				zap.Any("error", r),
				zap.Stack("stacktrace"),
			)
			outcome = FailedOutcome(agg.OrderNo, fmt.Sprintf("%v", r))
		}
	}()

	out, err := m.materialize(ctx, agg, currencyName)
	if err != nil {
		m.logger.Error("Failed to materialize order",
			zap.String("order_no", agg.OrderNo),
			zap.Error(err),
		)
		return FailedOutcome(agg.OrderNo, err.Error())
	}
	return out
}

// resolvedLine is a line that survived resolution, priced and counted
type resolvedLine struct {
	productID   uuid.UUID
	productName string
	unitPrice   decimal.Decimal
	quantity    decimal.Decimal
}

func (m *OrderMaterializer) materialize(ctx context.Context, agg *OrderAggregate, currencyName string) (ImportOutcome, error) {
	supplier, err := m.findOrCreateSupplier(ctx, agg.SellerCompany, agg.SellerName)
	if err != nil {
		return ImportOutcome{}, err
	}

	shippingFee, ok := agg.ShippingFee.Decimal(decimal.Zero)
	if !ok {
		return ImportOutcome{}, fmt.Errorf("invalid shipping fee %q", agg.ShippingFee.String())
	}

	// The proration denominator covers every parsed line, including
	// lines that resolution later drops.
	priced := make([]PricedQuantity, len(agg.Lines))
	for i, line := range agg.Lines {
		unitPrice, ok := line.UnitPrice.Decimal(decimal.Zero)
		if !ok {
			return ImportOutcome{}, fmt.Errorf("invalid unit price %q for product %q", line.UnitPrice.String(), line.ProductName)
		}
		quantity, ok := line.Quantity.Decimal(decimal.Zero)
		if !ok {
			return ImportOutcome{}, fmt.Errorf("invalid quantity %q for product %q", line.Quantity.String(), line.ProductName)
		}
		priced[i] = PricedQuantity{UnitPrice: unitPrice, Quantity: quantity}
	}
	totalAmount := TotalAmount(priced)

	var skipped []SkippedLine
	var kept []resolvedLine
	for i, line := range agg.Lines {
		result, err := m.resolver.Resolve(ctx, line)
		if err != nil {
			return ImportOutcome{}, err
		}
		if !result.Found() {
			skipped = append(skipped, SkippedLine{
				ProductName: line.ProductName,
				Reference:   line.ProductRef,
				Reason:      result.Reason,
			})
			continue
		}
		kept = append(kept, resolvedLine{
			productID:   result.Product.GetID(),
			productName: line.ProductName,
			unitPrice:   AllocatedUnitPrice(priced[i].UnitPrice, priced[i].Quantity, totalAmount, shippingFee),
			quantity:    priced[i].Quantity,
		})
	}

	if len(kept) == 0 {
		reason := "no valid order lines"
		if len(skipped) > 0 {
			reason = fmt.Sprintf("no valid order lines, %d product lines were skipped", len(skipped))
		}
		m.logger.Warn("Order produced no purchase record",
			zap.String("order_no", agg.OrderNo),
			zap.Int("skipped_lines", len(skipped)),
		)
		return SkippedOutcome(agg.OrderNo, reason, skipped), nil
	}

	name, err := m.orders.NextName(ctx)
	if err != nil {
		return ImportOutcome{}, err
	}

	orderDate := time.Now()
	if agg.CreateDate.Kind == CellDatetime {
		orderDate = agg.CreateDate.Time
	}

	order, err := trade.NewPurchaseOrder(name, supplier.GetID(), supplier.Name, currencyName, orderDate)
	if err != nil {
		return ImportOutcome{}, err
	}
	order.SetOrigin(m.originPrefix + agg.OrderNo)
	order.SetNotes(buildNotes(agg))

	for _, line := range kept {
		if err := order.AddLine(line.productID, line.productName, line.quantity, line.unitPrice); err != nil {
			return ImportOutcome{}, err
		}
	}

	if err := m.orders.Save(ctx, order); err != nil {
		return ImportOutcome{}, err
	}

	m.logger.Info("Created purchase order",
		zap.String("purchase_name", order.Name),
		zap.String("order_no", agg.OrderNo),
		zap.String("supplier", supplier.Name),
		zap.Int("skipped_lines", len(skipped)),
	)

	if len(skipped) > 0 {
		return PartialOutcome(agg.OrderNo, order.Name, supplier.Name, order.AmountTotal, skipped), nil
	}
	return SuccessOutcome(agg.OrderNo, order.Name, supplier.Name, order.AmountTotal), nil
}

// findOrCreateSupplier looks the seller up by exact company name among
// partners acting as suppliers, creating one when nothing matches.
func (m *OrderMaterializer) findOrCreateSupplier(ctx context.Context, companyName, memberName string) (*partner.Supplier, error) {
	if companyName != "" {
		supplier, err := m.suppliers.FindSupplierByName(ctx, companyName)
		if err == nil {
			return supplier, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	supplier, err := partner.NewImportedSupplier(companyName, memberName)
	if err != nil {
		return nil, err
	}
	if err := m.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	m.logger.Info("Created supplier", zap.String("name", supplier.Name))
	return supplier, nil
}

// buildNotes assembles the free-text note block for a purchase order.
// Optional fields are omitted entirely when blank.
func buildNotes(agg *OrderAggregate) string {
	var b strings.Builder
	b.WriteString("1688 order information\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Order no: %s\n", agg.OrderNo)
	fmt.Fprintf(&b, "Seller member name: %s\n", orDash(agg.SellerName))
	fmt.Fprintf(&b, "Order status: %s\n", orDash(agg.OrderStatus))

	if !agg.PaymentDate.IsEmpty() {
		fmt.Fprintf(&b, "Payment date: %s\n", agg.PaymentDate.String())
	}
	if agg.LogisticsCompany != "" {
		fmt.Fprintf(&b, "Logistics company: %s\n", agg.LogisticsCompany)
	}
	if agg.TrackingNo != "" {
		fmt.Fprintf(&b, "Tracking no: %s\n", agg.TrackingNo)
	}
	if agg.BuyerNote != "" {
		fmt.Fprintf(&b, "Buyer note: %s\n", agg.BuyerNote)
	}
	if !agg.ShippingFee.IsEmpty() {
		fmt.Fprintf(&b, "Shipping fee: ¥%s\n", agg.ShippingFee.String())
	}
	if agg.Discount != "" {
		fmt.Fprintf(&b, "Discount: ¥%s\n", agg.Discount)
	}
	if agg.ActualPayment != "" {
		fmt.Fprintf(&b, "Actual payment: ¥%s\n", agg.ActualPayment)
	}

	return b.String()
}

func orDash(value string) string {
	if value == "" {
		return "n/a"
	}
	return value
}
