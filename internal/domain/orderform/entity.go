// internal/domain/orderform/entity.go
package orderform

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem represents a single editable row of the order-entry form.
// Numeric fields hold the raw text the user typed; parsing happens at
// calculation time so a half-typed value never blocks editing.
type LineItem struct {
	// RecordID is the persisted sale-item id, zero for rows created in
	// the current editing session.
	RecordID        uint
	ProductID       uint
	Quantity        string
	UnitPrice       string
	DiscountPercent string
	DiscountAmount  string
	// Deleted marks a previously persisted row for deletion instead of
	// removing it from the form outright.
	Deleted bool
}

// Subtotal returns quantity x unit price for the row.
func (li *LineItem) Subtotal() decimal.Decimal {
	return parseAmount(li.Quantity).Mul(parseAmount(li.UnitPrice))
}

// Total returns the row total: subtotal minus the row discount amount.
func (li *LineItem) Total() decimal.Decimal {
	return li.Subtotal().Sub(parseAmount(li.DiscountAmount))
}

// Totals holds the derived order-level amounts. They are recomputed from
// scratch on every mutation and never stored.
type Totals struct {
	Subtotal   decimal.Decimal
	GrandTotal decimal.Decimal
	AmountDue  decimal.Decimal
}

// RowView is the render model for a single row.
type RowView struct {
	RecordID        uint
	ProductID       uint
	Quantity        string
	UnitPrice       string
	DiscountPercent string
	DiscountAmount  string
	Total           string
	Deleted         bool
	RemoveVisible   bool
}

// Snapshot is the full render model of the form. The UI layer draws from
// it instead of re-deriving state by scanning markup.
type Snapshot struct {
	Rows       []RowView
	Subtotal   string
	GrandTotal string
	AmountDue  string
	// DueValue is the bare two-decimal amount for the hidden due field.
	DueValue string
}

// View receives render snapshots. Implementations own all DOM access;
// nothing inside the engine touches a widget directly.
type View interface {
	RenderForm(s Snapshot)
}

// parseAmount coerces free-text numeric input to a decimal. Empty or
// unparseable text becomes zero, never an error, and negative input is
// treated as zero since every parsed field is a non-negative amount.
func parseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// formatMoney renders an amount with the currency glyph and exactly two
// decimal places.
func formatMoney(symbol string, d decimal.Decimal) string {
	return symbol + d.StringFixed(2)
}
