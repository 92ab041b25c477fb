// internal/domain/orderform/discount.go
package orderform

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// syncFromPercent reconciles the row after a discount-percentage edit:
// the amount is re-derived from the current row subtotal and written back,
// rounded to two decimals. A percentage above 100 is clamped (and the
// edited field rewritten) so the discount can never exceed the subtotal.
func (li *LineItem) syncFromPercent() {
	pct := parseAmount(li.DiscountPercent)
	if pct.GreaterThan(hundred) {
		pct = hundred
		li.DiscountPercent = pct.StringFixed(2)
	}

	amount := li.Subtotal().Mul(pct).Div(hundred).Round(2)
	li.DiscountAmount = amount.StringFixed(2)
}

// syncFromAmount reconciles the row after a discount-amount edit: the
// percentage is re-derived and written back, rounded to two decimals. A
// zero subtotal forces the percentage to zero regardless of the amount
// entered, and an amount above the subtotal is clamped to it.
func (li *LineItem) syncFromAmount() {
	subtotal := li.Subtotal()
	amount := parseAmount(li.DiscountAmount)
	if amount.GreaterThan(subtotal) {
		amount = subtotal
		li.DiscountAmount = amount.StringFixed(2)
	}

	pct := decimal.Zero
	if subtotal.IsPositive() {
		pct = amount.Div(subtotal).Mul(hundred).Round(2)
	}
	li.DiscountPercent = pct.StringFixed(2)
}
