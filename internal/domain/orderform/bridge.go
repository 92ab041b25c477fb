// internal/domain/orderform/bridge.go
package orderform

import "github.com/shopspring/decimal"

// GridRerenderer re-draws the catalog grid so a newly selected product
// shows up disabled.
type GridRerenderer interface {
	Rerender()
}

// Bridge carries catalog card activations into the line-item collection.
// It is the only component that crosses between the two mutable sets.
type Bridge struct {
	form    *Form
	browser GridRerenderer
}

// NewBridge creates a bridge between the form and the catalog grid.
func NewBridge(form *Form, browser GridRerenderer) *Bridge {
	return &Bridge{form: form, browser: browser}
}

// ActivateCard handles a click on a catalog card. Products already bound
// to a row are ignored, so double activation is a no-op. Otherwise the
// first product-less row is filled — or a fresh row is appended and
// filled, which is safe immediately because AddRow returns a live index.
// The card's listed price is used as-is; no remote lookup is needed.
func (b *Bridge) ActivateCard(productID uint, price decimal.Decimal) {
	if productID == 0 {
		return
	}
	if b.form.SelectedProductIDs()[productID] {
		return
	}

	target := b.form.FirstEmptyRow()
	if target < 0 {
		target = b.form.AddRow()
	}

	if err := b.form.BindProduct(target, productID, price); err != nil {
		return
	}

	if b.browser != nil {
		b.browser.Rerender()
	}
}
