package importapp

// LineItem is one product row within an order. Price and quantity stay
// as raw cells here: coercion errors must surface during
// materialization of the owning order, not during grouping.
type LineItem struct {
	ProductName string
	UnitPrice   RawCell
	Quantity    RawCell
	UOM         string
	ProductCode string
	Model       string
	SKUID       string
	ProductRef  string
}

// OrderAggregate collects every row of one marketplace order. Lines keep
// spreadsheet row order. Aggregates live only for the duration of one
// import run.
type OrderAggregate struct {
	OrderNo          string
	SellerCompany    string
	SellerName       string
	TotalPrice       string
	ShippingFee      RawCell
	Discount         string
	ActualPayment    string
	OrderStatus      string
	CreateDate       RawCell
	PaymentDate      RawCell
	TrackingNo       string
	LogisticsCompany string
	BuyerNote        string
	Lines            []LineItem
}

// GroupRows folds spreadsheet rows into order aggregates. The export
// repeats header fields only on the first row of each order; follow-up
// rows leave the order number blank, so the last seen number is carried
// forward. Rows whose resolved order number is blank are dropped, which
// includes continuation rows appearing before any order was seen.
func GroupRows(rows [][]string, headerRows int) []*OrderAggregate {
	aggregates := make([]*OrderAggregate, 0)
	byOrderNo := make(map[string]*OrderAggregate)
	lastOrderNo := ""

	for i := headerRows; i < len(rows); i++ {
		row := rows[i]
		orderNo := ReadCell(cellAt(row, colOrderNo)).String()

		if orderNo == "" && len(aggregates) > 0 {
			orderNo = lastOrderNo
		} else {
			lastOrderNo = orderNo
		}
		if orderNo == "" {
			continue
		}

		agg, ok := byOrderNo[orderNo]
		if !ok {
			agg = &OrderAggregate{
				OrderNo:          orderNo,
				SellerCompany:    ReadCell(cellAt(row, colSellerCompany)).String(),
				SellerName:       ReadCell(cellAt(row, colSellerName)).String(),
				TotalPrice:       ReadCell(cellAt(row, colTotalPrice)).String(),
				ShippingFee:      ReadCell(cellAt(row, colShippingFee)),
				Discount:         ReadCell(cellAt(row, colDiscount)).String(),
				ActualPayment:    ReadCell(cellAt(row, colActualPayment)).String(),
				OrderStatus:      ReadCell(cellAt(row, colOrderStatus)).String(),
				CreateDate:       ReadCell(cellAt(row, colCreateDate)),
				PaymentDate:      ReadCell(cellAt(row, colPaymentDate)),
				TrackingNo:       ReadCell(cellAt(row, colTrackingNo)).String(),
				LogisticsCompany: ReadCell(cellAt(row, colLogistics)).String(),
				BuyerNote:        ReadCell(cellAt(row, colBuyerNote)).String(),
			}
			byOrderNo[orderNo] = agg
			aggregates = append(aggregates, agg)
		}

		productName := ReadCell(cellAt(row, colProductName)).String()
		if productName == "" {
			continue
		}

		agg.Lines = append(agg.Lines, LineItem{
			ProductName: productName,
			UnitPrice:   ReadCell(cellAt(row, colUnitPrice)),
			Quantity:    ReadCell(cellAt(row, colQuantity)),
			UOM:         ReadCell(cellAt(row, colUOM)).String(),
			ProductCode: ReadCell(cellAt(row, colProductCode)).String(),
			Model:       ReadCell(cellAt(row, colModel)).String(),
			SKUID:       ReadCell(cellAt(row, colSKUID)).String(),
			ProductRef:  ReadCell(cellAt(row, colProductRef)).String(),
		})
	}

	return aggregates
}
