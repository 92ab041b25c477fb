// internal/domain/orderform/form.go
package orderform

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PriceFetcher looks up the authoritative unit price for a product.
type PriceFetcher interface {
	ProductPrice(ctx context.Context, productID uint) (decimal.Decimal, error)
}

// CatalogRefresher is notified whenever the set of selected products may
// have changed, so the catalog can re-render card availability.
type CatalogRefresher interface {
	RefreshAvailability()
}

// Form owns the ordered collection of line items and the global numeric
// fields, and keeps every derived value consistent as they change. All
// state lives here explicitly; the UI layer holds no model state of its
// own and only receives snapshots through the View.
type Form struct {
	mu     sync.Mutex
	log    *logrus.Logger
	prices PriceFetcher
	view   View
	// catalog is optional; a form can run without a product browser.
	catalog  CatalogRefresher
	currency string

	rows           []LineItem
	globalDiscount string
	tax            string
	paid           string

	// priceGen guards against out-of-order price lookups: a completion
	// whose generation is no longer current for its row is discarded.
	priceGen map[int]uint64
	// epoch invalidates all in-flight lookups whenever row indexes shift.
	epoch uint64
}

// NewForm creates an order-entry form with a single empty row, since an
// order must always retain at least one line item.
func NewForm(currency string, prices PriceFetcher, log *logrus.Logger) *Form {
	f := &Form{
		log:      log,
		prices:   prices,
		currency: currency,
		priceGen: make(map[int]uint64),
	}
	f.rows = append(f.rows, LineItem{})
	return f
}

// SetView attaches the render target and pushes an initial snapshot.
func (f *Form) SetView(v View) {
	f.mu.Lock()
	f.view = v
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)
}

// SetCatalog attaches the catalog browser for availability refreshes.
func (f *Form) SetCatalog(c CatalogRefresher) {
	f.mu.Lock()
	f.catalog = c
	f.mu.Unlock()
}

// AddRow appends a new empty line item and returns its index. The backing
// state exists before this returns, so callers can fill the row
// immediately — there is no delay between creating a row and using it.
func (f *Form) AddRow() int {
	f.mu.Lock()
	f.rows = append(f.rows, LineItem{})
	idx := len(f.rows) - 1
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	return idx
}

// RemoveRow removes a line item from the editable set. It recomputes the
// totals and asks the catalog to refresh product availability, since the
// removed row may have freed up a product.
func (f *Form) RemoveRow(index int) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.rows) {
		f.mu.Unlock()
		return fmt.Errorf("row %d does not exist", index)
	}
	f.rows = append(f.rows[:index], f.rows[index+1:]...)
	f.priceGen = make(map[int]uint64)
	f.epoch++
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	f.refreshCatalog()
	return nil
}

// SetDeleted toggles the deletion flag of a persisted row. Flagged rows
// leave the totals and the active-row count but keep their place in the
// form until it is saved.
func (f *Form) SetDeleted(index int, deleted bool) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.rows) {
		f.mu.Unlock()
		return fmt.Errorf("row %d does not exist", index)
	}
	f.rows[index].Deleted = deleted
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	return nil
}

// SetQuantity records a quantity edit and recomputes.
func (f *Form) SetQuantity(index int, text string) {
	f.editField(index, func(li *LineItem) { li.Quantity = text })
}

// SetUnitPrice records a unit-price edit and recomputes.
func (f *Form) SetUnitPrice(index int, text string) {
	f.editField(index, func(li *LineItem) { li.UnitPrice = text })
}

// EditDiscountPercent records a discount-percentage edit, re-derives the
// discount amount for the row and recomputes. The last edited field wins.
func (f *Form) EditDiscountPercent(index int, text string) {
	f.editField(index, func(li *LineItem) {
		li.DiscountPercent = text
		li.syncFromPercent()
	})
}

// EditDiscountAmount records a discount-amount edit, re-derives the
// discount percentage for the row and recomputes.
func (f *Form) EditDiscountAmount(index int, text string) {
	f.editField(index, func(li *LineItem) {
		li.DiscountAmount = text
		li.syncFromAmount()
	})
}

// SetGlobalDiscount records an order-level discount edit and recomputes.
func (f *Form) SetGlobalDiscount(text string) {
	f.editGlobal(func() { f.globalDiscount = text })
}

// SetTax records a tax edit and recomputes.
func (f *Form) SetTax(text string) {
	f.editGlobal(func() { f.tax = text })
}

// SetPaid records an amount-paid edit and recomputes.
func (f *Form) SetPaid(text string) {
	f.editGlobal(func() { f.paid = text })
}

// SetProduct binds a product to a row. A non-zero product id triggers a
// price lookup against the pricing service; on failure the price is left
// untouched and the error only logged, so the user can still type a price
// by hand. A zero id clears the price. Either way the totals are
// recomputed and the catalog refreshed.
func (f *Form) SetProduct(ctx context.Context, index int, productID uint) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.rows) {
		f.mu.Unlock()
		return fmt.Errorf("row %d does not exist", index)
	}
	f.rows[index].ProductID = productID
	if productID == 0 {
		f.rows[index].UnitPrice = ""
	}
	f.priceGen[index]++
	gen, epoch := f.priceGen[index], f.epoch
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	f.refreshCatalog()

	if productID == 0 {
		return nil
	}

	price, err := f.prices.ProductPrice(ctx, productID)
	if err != nil {
		f.log.WithError(err).WithField("product_id", productID).
			Error("Failed to fetch product price")
		return nil
	}

	f.mu.Lock()
	// A later edit on this row, or any row reshuffle, supersedes this
	// lookup: drop the result.
	if f.epoch != epoch || index >= len(f.rows) || f.priceGen[index] != gen {
		f.mu.Unlock()
		return nil
	}
	f.rows[index].UnitPrice = price.StringFixed(2)
	snap = f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	return nil
}

// BindProduct fills a row from an already-known catalog entry: product,
// price, and a default quantity of one if the row has none. No remote
// lookup happens here.
func (f *Form) BindProduct(index int, productID uint, price decimal.Decimal) error {
	f.mu.Lock()
	if index < 0 || index >= len(f.rows) {
		f.mu.Unlock()
		return fmt.Errorf("row %d does not exist", index)
	}
	row := &f.rows[index]
	row.ProductID = productID
	row.UnitPrice = price.StringFixed(2)
	if parseAmount(row.Quantity).IsZero() {
		row.Quantity = "1"
	}
	f.priceGen[index]++
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	f.refreshCatalog()
	return nil
}

// Recompute re-renders the current state without changing it.
func (f *Form) Recompute() {
	f.mu.Lock()
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)
}

// SelectedProductIDs returns the set of product ids bound to any row.
// Delete-flagged rows still count: their product stays occupied until the
// form is saved.
func (f *Form) SelectedProductIDs() map[uint]bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	selected := make(map[uint]bool)
	for i := range f.rows {
		if f.rows[i].ProductID != 0 {
			selected[f.rows[i].ProductID] = true
		}
	}
	return selected
}

// FirstEmptyRow returns the index of the first row without a product, or
// -1 if every row is occupied.
func (f *Form) FirstEmptyRow() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.rows {
		if f.rows[i].ProductID == 0 {
			return i
		}
	}
	return -1
}

// Row returns a copy of the line item at index.
func (f *Form) Row(index int) (LineItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if index < 0 || index >= len(f.rows) {
		return LineItem{}, false
	}
	return f.rows[index], true
}

// RowCount returns the number of rows in the form, flagged or not.
func (f *Form) RowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// Snapshot returns the current render model.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// LoadRows replaces the form contents with previously persisted rows, for
// editing an existing order. An empty slice falls back to one blank row.
func (f *Form) LoadRows(rows []LineItem) {
	f.mu.Lock()
	if len(rows) == 0 {
		rows = []LineItem{{}}
	}
	f.rows = append([]LineItem(nil), rows...)
	f.priceGen = make(map[int]uint64)
	f.epoch++
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.render(snap)
	f.refreshCatalog()
}

func (f *Form) editField(index int, mutate func(*LineItem)) {
	f.mu.Lock()
	if index < 0 || index >= len(f.rows) {
		f.mu.Unlock()
		return
	}
	mutate(&f.rows[index])
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)
}

func (f *Form) editGlobal(mutate func()) {
	f.mu.Lock()
	mutate()
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.render(snap)
}

// activeRowCountLocked counts rows not flagged for deletion.
func (f *Form) activeRowCountLocked() int {
	n := 0
	for i := range f.rows {
		if !f.rows[i].Deleted {
			n++
		}
	}
	return n
}

// snapshotLocked builds the render model. Remove affordances hide on the
// last active row so an order always keeps at least one line item.
func (f *Form) snapshotLocked() Snapshot {
	rowTotals, totals := ComputeTotals(f.rows, f.globalDiscount, f.tax, f.paid)
	active := f.activeRowCountLocked()

	snap := Snapshot{
		Rows:       make([]RowView, len(f.rows)),
		Subtotal:   formatMoney(f.currency, totals.Subtotal),
		GrandTotal: formatMoney(f.currency, totals.GrandTotal),
		AmountDue:  formatMoney(f.currency, totals.AmountDue),
		DueValue:   totals.AmountDue.StringFixed(2),
	}
	for i := range f.rows {
		li := &f.rows[i]
		snap.Rows[i] = RowView{
			RecordID:        li.RecordID,
			ProductID:       li.ProductID,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			DiscountPercent: li.DiscountPercent,
			DiscountAmount:  li.DiscountAmount,
			Total:           formatMoney(f.currency, rowTotals[i]),
			Deleted:         li.Deleted,
			RemoveVisible:   li.Deleted || active != 1,
		}
	}
	return snap
}

func (f *Form) render(snap Snapshot) {
	f.mu.Lock()
	view := f.view
	f.mu.Unlock()
	if view != nil {
		view.RenderForm(snap)
	}
}

func (f *Form) refreshCatalog() {
	f.mu.Lock()
	catalog := f.catalog
	f.mu.Unlock()
	if catalog != nil {
		catalog.RefreshAvailability()
	}
}
