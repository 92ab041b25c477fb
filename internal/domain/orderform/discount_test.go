package orderform

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSyncFromPercent(t *testing.T) {
	tests := []struct {
		name        string
		item        LineItem
		wantAmount  string
		wantPercent string
	}{
		{
			name:        "ten percent of three hundred",
			item:        LineItem{Quantity: "3", UnitPrice: "100", DiscountPercent: "10"},
			wantAmount:  "30.00",
			wantPercent: "10",
		},
		{
			name:        "rounds to two decimals",
			item:        LineItem{Quantity: "3", UnitPrice: "99.99", DiscountPercent: "10"},
			wantAmount:  "30.00",
			wantPercent: "10",
		},
		{
			name:        "zero subtotal yields zero amount",
			item:        LineItem{DiscountPercent: "50"},
			wantAmount:  "0.00",
			wantPercent: "50",
		},
		{
			name:        "over one hundred percent clamps both fields",
			item:        LineItem{Quantity: "2", UnitPrice: "100", DiscountPercent: "150"},
			wantAmount:  "200.00",
			wantPercent: "100.00",
		},
		{
			name:        "unparseable percentage treated as zero",
			item:        LineItem{Quantity: "2", UnitPrice: "100", DiscountPercent: "??"},
			wantAmount:  "0.00",
			wantPercent: "??",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.item.syncFromPercent()
			if tc.item.DiscountAmount != tc.wantAmount {
				t.Errorf("amount = %q, want %q", tc.item.DiscountAmount, tc.wantAmount)
			}
			if tc.item.DiscountPercent != tc.wantPercent {
				t.Errorf("percent = %q, want %q", tc.item.DiscountPercent, tc.wantPercent)
			}
		})
	}
}

func TestSyncFromAmount(t *testing.T) {
	tests := []struct {
		name        string
		item        LineItem
		wantPercent string
		wantAmount  string
	}{
		{
			name:        "thirty of three hundred is ten percent",
			item:        LineItem{Quantity: "3", UnitPrice: "100", DiscountAmount: "30"},
			wantPercent: "10.00",
			wantAmount:  "30",
		},
		{
			name:        "zero subtotal forces zero percent",
			item:        LineItem{DiscountAmount: "25"},
			wantPercent: "0.00",
			wantAmount:  "0.00",
		},
		{
			name:        "amount above subtotal clamps to subtotal",
			item:        LineItem{Quantity: "1", UnitPrice: "100", DiscountAmount: "250"},
			wantPercent: "100.00",
			wantAmount:  "100.00",
		},
		{
			name:        "repeating fraction rounds to two decimals",
			item:        LineItem{Quantity: "3", UnitPrice: "1", DiscountAmount: "1"},
			wantPercent: "33.33",
			wantAmount:  "1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.item.syncFromAmount()
			if tc.item.DiscountPercent != tc.wantPercent {
				t.Errorf("percent = %q, want %q", tc.item.DiscountPercent, tc.wantPercent)
			}
			if tc.item.DiscountAmount != tc.wantAmount {
				t.Errorf("amount = %q, want %q", tc.item.DiscountAmount, tc.wantAmount)
			}
		})
	}
}

// Setting the percentage, re-deriving the amount, then re-deriving the
// percentage from that amount must land back on the original value
// within two-decimal rounding tolerance.
func TestDiscountRoundTrip(t *testing.T) {
	percentages := []string{"10", "12.5", "33.33", "99.99", "0.01"}
	tolerance := decimal.RequireFromString("0.01")

	for _, pct := range percentages {
		t.Run(pct, func(t *testing.T) {
			item := LineItem{Quantity: "3", UnitPrice: "99.99", DiscountPercent: pct}
			item.syncFromPercent()
			item.syncFromAmount()

			got := decimal.RequireFromString(item.DiscountPercent)
			want := decimal.RequireFromString(pct)
			if got.Sub(want).Abs().GreaterThan(tolerance) {
				t.Errorf("round-trip percent = %s, want %s within %s", got, want, tolerance)
			}
		})
	}
}

// After any synchronizer pass the discount amount never exceeds the row
// subtotal.
func TestDiscountAmountNeverExceedsSubtotal(t *testing.T) {
	items := []LineItem{
		{Quantity: "2", UnitPrice: "49.99", DiscountAmount: "1000"},
		{Quantity: "0", UnitPrice: "100", DiscountAmount: "10"},
		{Quantity: "5", UnitPrice: "20", DiscountPercent: "400"},
	}

	for i := range items {
		if items[i].DiscountAmount != "" && items[i].DiscountPercent == "" {
			items[i].syncFromAmount()
		} else {
			items[i].syncFromPercent()
		}

		subtotal := items[i].Subtotal()
		amount := parseAmount(items[i].DiscountAmount)
		if amount.GreaterThan(subtotal) {
			t.Errorf("row %d: amount %s exceeds subtotal %s", i, amount, subtotal)
		}
	}
}
