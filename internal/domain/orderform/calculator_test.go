package orderform

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeTotals_RowAlgebra(t *testing.T) {
	tests := []struct {
		name      string
		item      LineItem
		wantTotal string
	}{
		{
			name:      "quantity times price minus discount",
			item:      LineItem{Quantity: "3", UnitPrice: "100", DiscountAmount: "30"},
			wantTotal: "270",
		},
		{
			name:      "empty fields degrade to zero",
			item:      LineItem{},
			wantTotal: "0",
		},
		{
			name:      "unparseable quantity degrades to zero",
			item:      LineItem{Quantity: "abc", UnitPrice: "100"},
			wantTotal: "0",
		},
		{
			name:      "unparseable discount degrades to zero",
			item:      LineItem{Quantity: "2", UnitPrice: "50", DiscountAmount: "x"},
			wantTotal: "100",
		},
		{
			name:      "negative input treated as zero",
			item:      LineItem{Quantity: "-3", UnitPrice: "100"},
			wantTotal: "0",
		},
		{
			name:      "fractional quantity",
			item:      LineItem{Quantity: "1.5", UnitPrice: "10", DiscountAmount: "5"},
			wantTotal: "10",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rowTotals, _ := ComputeTotals([]LineItem{tc.item}, "", "", "")
			if rowTotals[0].String() != tc.wantTotal {
				t.Fatalf("row total = %s, want %s", rowTotals[0], tc.wantTotal)
			}
		})
	}
}

func TestComputeTotals_OrderTotals(t *testing.T) {
	// Two rows totalling 270 and 150, discount 20, tax 10, paid 300.
	items := []LineItem{
		{Quantity: "3", UnitPrice: "100", DiscountAmount: "30"},
		{Quantity: "1", UnitPrice: "150"},
	}

	_, totals := ComputeTotals(items, "20", "10", "300")

	if got := totals.Subtotal.StringFixed(2); got != "420.00" {
		t.Errorf("subtotal = %s, want 420.00", got)
	}
	if got := totals.GrandTotal.StringFixed(2); got != "410.00" {
		t.Errorf("grand total = %s, want 410.00", got)
	}
	if got := totals.AmountDue.StringFixed(2); got != "110.00" {
		t.Errorf("amount due = %s, want 110.00", got)
	}
}

func TestComputeTotals_DeletedRowsLeaveSubtotal(t *testing.T) {
	items := []LineItem{
		{Quantity: "3", UnitPrice: "100", DiscountAmount: "30"},
		{Quantity: "1", UnitPrice: "150", Deleted: true},
	}

	rowTotals, totals := ComputeTotals(items, "", "", "")

	// The flagged row still gets a rendered total.
	if rowTotals[1].StringFixed(2) != "150.00" {
		t.Errorf("deleted row total = %s, want 150.00", rowTotals[1].StringFixed(2))
	}
	if got := totals.Subtotal.StringFixed(2); got != "270.00" {
		t.Errorf("subtotal = %s, want 270.00", got)
	}
}

func TestComputeTotals_GlobalFieldsCoerceToZero(t *testing.T) {
	items := []LineItem{{Quantity: "2", UnitPrice: "100"}}

	_, totals := ComputeTotals(items, "not-a-number", "", "  ")

	if !totals.GrandTotal.Equal(decimal.NewFromInt(200)) {
		t.Errorf("grand total = %s, want 200", totals.GrandTotal)
	}
	if !totals.AmountDue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("amount due = %s, want 200", totals.AmountDue)
	}
}

func TestComputeTotals_OverpaymentGoesNegative(t *testing.T) {
	items := []LineItem{{Quantity: "1", UnitPrice: "100"}}

	_, totals := ComputeTotals(items, "", "", "150")

	if got := totals.AmountDue.StringFixed(2); got != "-50.00" {
		t.Errorf("amount due = %s, want -50.00", got)
	}
}
