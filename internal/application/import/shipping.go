package importapp

import "github.com/shopspring/decimal"

// PricedQuantity is the (unit price, quantity) pair the shipping
// allocator works on.
type PricedQuantity struct {
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// TotalAmount returns the pre-shipping order total over the given lines
func TotalAmount(lines []PricedQuantity) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(line.Quantity))
	}
	return total
}

// AllocatedUnitPrice folds one line's proportional share of the order
// shipping fee into its unit price:
//
//	unit_price + ((unit_price*quantity / total) * fee) / quantity
//
// When the fee, the order total, or the line quantity is not positive
// the unit price is returned unchanged. A zero-quantity line therefore
// absorbs none of the fee and the allocated order total undercounts it.
func AllocatedUnitPrice(unitPrice, quantity, totalAmount, shippingFee decimal.Decimal) decimal.Decimal {
	if !shippingFee.IsPositive() || !totalAmount.IsPositive() || !quantity.IsPositive() {
		return unitPrice
	}
	lineAmount := unitPrice.Mul(quantity)
	allocation := lineAmount.Div(totalAmount).Mul(shippingFee)
	return unitPrice.Add(allocation.Div(quantity))
}

// AllocateShipping returns the allocated unit price for every line,
// prorating the fee against the total of the given lines.
func AllocateShipping(shippingFee decimal.Decimal, lines []PricedQuantity) []decimal.Decimal {
	total := TotalAmount(lines)
	allocated := make([]decimal.Decimal, len(lines))
	for i, line := range lines {
		allocated[i] = AllocatedUnitPrice(line.UnitPrice, line.Quantity, total, shippingFee)
	}
	return allocated
}
