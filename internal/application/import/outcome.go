package importapp

import "github.com/shopspring/decimal"

// OutcomeStatus is the closed set of per-order import results
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomePartial OutcomeStatus = "partial"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// SkippedLine records one product line excluded from a created order
type SkippedLine struct {
	ProductName string `json:"product_name"`
	Reference   string `json:"reference"`
	Reason      string `json:"reason"`
}

// ImportOutcome is the result of materializing one marketplace order.
// Exactly one outcome exists per order number per run; the sequence of
// outcomes preserves spreadsheet encounter order.
type ImportOutcome struct {
	Status       OutcomeStatus   `json:"status"`
	OrderNo      string          `json:"order_no"`
	PurchaseName string          `json:"purchase_name,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	AmountTotal  decimal.Decimal `json:"amount_total"`
	SkippedLines []SkippedLine   `json:"skipped_lines,omitempty"`
	Reason       string          `json:"reason,omitempty"`
}

// SuccessOutcome marks an order fully materialized
func SuccessOutcome(orderNo, purchaseName, supplierName string, total decimal.Decimal) ImportOutcome {
	return ImportOutcome{
		Status:       OutcomeSuccess,
		OrderNo:      orderNo,
		PurchaseName: purchaseName,
		SupplierName: supplierName,
		AmountTotal:  total,
	}
}

// PartialOutcome marks an order materialized with some lines skipped
func PartialOutcome(orderNo, purchaseName, supplierName string, total decimal.Decimal, skipped []SkippedLine) ImportOutcome {
	return ImportOutcome{
		Status:       OutcomePartial,
		OrderNo:      orderNo,
		PurchaseName: purchaseName,
		SupplierName: supplierName,
		AmountTotal:  total,
		SkippedLines: skipped,
	}
}

// SkippedOutcome marks an order that produced no purchase record
func SkippedOutcome(orderNo, reason string, skipped []SkippedLine) ImportOutcome {
	return ImportOutcome{
		Status:       OutcomeSkipped,
		OrderNo:      orderNo,
		Reason:       reason,
		SkippedLines: skipped,
	}
}

// FailedOutcome marks an order whose materialization errored out
func FailedOutcome(orderNo, reason string) ImportOutcome {
	return ImportOutcome{
		Status:  OutcomeFailed,
		OrderNo: orderNo,
		Reason:  reason,
	}
}
