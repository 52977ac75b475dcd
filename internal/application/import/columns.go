package importapp

// Fixed 1-indexed column layout of the 1688 order export. The sheet is
// position-based: headers are skipped, never inspected.
const (
	colOrderNo       = 1
	colSellerCompany = 4
	colSellerName    = 5
	colTotalPrice    = 6
	colShippingFee   = 7
	colDiscount      = 8
	colActualPayment = 9
	colOrderStatus   = 10
	colCreateDate    = 11
	colPaymentDate   = 12
	colProductName   = 19
	colUnitPrice     = 20
	colQuantity      = 21
	colUOM           = 22
	colProductCode   = 23
	colModel         = 24
	colSKUID         = 26
	colProductRef    = 27
	colBuyerNote     = 30
	colLogistics     = 31
	colTrackingNo    = 32
)

// cellAt returns the raw value at a 1-indexed column, tolerating rows
// that are shorter than the full layout.
func cellAt(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}
