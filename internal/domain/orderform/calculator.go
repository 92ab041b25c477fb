// internal/domain/orderform/calculator.go
package orderform

import "github.com/shopspring/decimal"

// ComputeTotals derives every row total plus the order totals from the
// current line items and the three global free-text fields. It is a pure
// function: calling it twice with unchanged inputs yields identical
// results, and it never fails — bad numeric input degrades to zero.
//
// Rows flagged for deletion still get a row total (their cell keeps
// rendering) but are excluded from the subtotal.
func ComputeTotals(items []LineItem, globalDiscount, tax, paid string) ([]decimal.Decimal, Totals) {
	rowTotals := make([]decimal.Decimal, len(items))
	subtotal := decimal.Zero

	for i := range items {
		rowTotals[i] = items[i].Total()
		if !items[i].Deleted {
			subtotal = subtotal.Add(rowTotals[i])
		}
	}

	grandTotal := subtotal.Sub(parseAmount(globalDiscount)).Add(parseAmount(tax))
	due := grandTotal.Sub(parseAmount(paid))

	return rowTotals, Totals{
		Subtotal:   subtotal,
		GrandTotal: grandTotal,
		AmountDue:  due,
	}
}
