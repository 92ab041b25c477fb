// internal/domain/catalog/browser.go
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/salesdesk/internal/config"
	"github.com/your-org/salesdesk/internal/pkg/apiclient"
)

// Phase is the browser's load state for the current page request.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseError
)

// Lister is the remote product listing boundary.
type Lister interface {
	ListProducts(ctx context.Context, filters apiclient.ProductFilters, page, pageSize int) (*apiclient.ProductPage, error)
	Categories(ctx context.Context) ([]apiclient.Ref, error)
	Brands(ctx context.Context) ([]apiclient.Ref, error)
}

// Card is the render model for one product in the grid. Disabled cards
// belong to products already placed on the order and cannot be activated.
type Card struct {
	ID       uint
	Name     string
	Brand    string
	Price    string
	Stock    int
	InStock  bool
	Image    string
	Disabled bool
}

// Grid is the full render model of the catalog pane.
type Grid struct {
	Phase       Phase
	Cards       []Card
	Page        int
	TotalPages  int
	TotalCount  int
	RangeStart  int
	RangeEnd    int
	PrevEnabled bool
	NextEnabled bool
	Categories  []apiclient.Ref
	Brands      []apiclient.Ref
}

// GridView receives grid snapshots for drawing.
type GridView interface {
	RenderGrid(g Grid)
}

// SelectionSource reports which product ids are already bound to the
// order's line items.
type SelectionSource func() map[uint]bool

// Browser is a paginated, filterable view over the remote product
// catalog. Every filter or page change replaces the page wholesale with a
// fresh server response; nothing is filtered client-side.
type Browser struct {
	mu        sync.Mutex
	log       *logrus.Logger
	client    Lister
	view      GridView
	selection SelectionSource

	pageSize      int
	debounceDelay time.Duration
	currency      string

	phase      Phase
	items      []apiclient.Product
	total      int
	page       int
	filters    apiclient.ProductFilters
	categories []apiclient.Ref
	brands     []apiclient.Ref

	// gen discards slow listing responses that a newer request has
	// already superseded.
	gen           uint64
	searchPending string
	searchTimer   *time.Timer
}

// NewBrowser creates a catalog browser. The selection source may be nil
// when the browser runs standalone.
func NewBrowser(client Lister, selection SelectionSource, cfg *config.Config, log *logrus.Logger) *Browser {
	return &Browser{
		log:           log,
		client:        client,
		selection:     selection,
		pageSize:      cfg.Form.CatalogPageSize,
		debounceDelay: cfg.Form.SearchDebounce,
		currency:      cfg.Form.CurrencySymbol,
		page:          1,
	}
}

// SetView attaches the render target.
func (b *Browser) SetView(v GridView) {
	b.mu.Lock()
	b.view = v
	b.mu.Unlock()
}

// LoadFilterOptions fetches the category and brand dropdown options.
// Failures only log; the catalog stays usable without filter options.
func (b *Browser) LoadFilterOptions(ctx context.Context) {
	categories, err := b.client.Categories(ctx)
	if err != nil {
		b.log.WithError(err).Warn("Failed to load category options")
	}
	brands, err := b.client.Brands(ctx)
	if err != nil {
		b.log.WithError(err).Warn("Failed to load brand options")
	}

	b.mu.Lock()
	if categories != nil {
		b.categories = categories
	}
	if brands != nil {
		b.brands = brands
	}
	b.mu.Unlock()
	b.Rerender()
}

// Load fetches the current page with the current filters, replacing the
// grid contents. The loading state renders immediately; the response
// renders when it lands, unless a newer request has superseded it.
func (b *Browser) Load(ctx context.Context) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.phase = PhaseLoading
	filters, page := b.filters, b.page
	b.mu.Unlock()
	b.Rerender()

	result, err := b.client.ListProducts(ctx, filters, page, b.pageSize)

	b.mu.Lock()
	if b.gen != gen {
		// A newer request owns the grid now.
		b.mu.Unlock()
		return
	}
	if err != nil {
		b.log.WithError(err).Error("Failed to load products")
		b.phase = PhaseError
		b.items = nil
		b.total = 0
	} else {
		b.phase = PhaseLoaded
		b.items = result.Results
		b.total = result.Count
	}
	b.mu.Unlock()
	b.Rerender()
}

// SetSearch records a search edit. The actual reload is debounced so
// rapid typing collapses into one request, and it always resets to the
// first page.
func (b *Browser) SetSearch(ctx context.Context, text string) {
	b.mu.Lock()
	b.searchPending = text
	if b.searchTimer != nil {
		b.searchTimer.Stop()
	}
	b.searchTimer = time.AfterFunc(b.debounceDelay, func() {
		b.mu.Lock()
		b.filters.Search = b.searchPending
		b.page = 1
		b.mu.Unlock()
		b.Load(ctx)
	})
	b.mu.Unlock()
}

// SetCategory applies a category filter and reloads from page one.
func (b *Browser) SetCategory(ctx context.Context, category string) {
	b.mu.Lock()
	b.filters.Category = category
	b.page = 1
	b.mu.Unlock()
	b.Load(ctx)
}

// SetBrand applies a brand filter and reloads from page one.
func (b *Browser) SetBrand(ctx context.Context, brand string) {
	b.mu.Lock()
	b.filters.Brand = brand
	b.page = 1
	b.mu.Unlock()
	b.Load(ctx)
}

// ClearFilters drops search and filters and reloads from page one.
func (b *Browser) ClearFilters(ctx context.Context) {
	b.mu.Lock()
	if b.searchTimer != nil {
		b.searchTimer.Stop()
	}
	b.searchPending = ""
	b.filters = apiclient.ProductFilters{}
	b.page = 1
	b.mu.Unlock()
	b.Load(ctx)
}

// SetPage jumps to page n if it is within range.
func (b *Browser) SetPage(ctx context.Context, n int) {
	b.mu.Lock()
	if n < 1 || (b.phase == PhaseLoaded && n > b.totalPagesLocked() && n != 1) {
		b.mu.Unlock()
		return
	}
	b.page = n
	b.mu.Unlock()
	b.Load(ctx)
}

// NextPage advances one page unless already on the last.
func (b *Browser) NextPage(ctx context.Context) {
	b.mu.Lock()
	if b.page >= b.totalPagesLocked() || b.total == 0 {
		b.mu.Unlock()
		return
	}
	n := b.page + 1
	b.mu.Unlock()
	b.SetPage(ctx, n)
}

// PrevPage goes back one page unless already on the first.
func (b *Browser) PrevPage(ctx context.Context) {
	b.mu.Lock()
	if b.page <= 1 {
		b.mu.Unlock()
		return
	}
	n := b.page - 1
	b.mu.Unlock()
	b.SetPage(ctx, n)
}

// RefreshAvailability re-renders the grid against the current selection
// set. The form calls this whenever its product bindings change.
func (b *Browser) RefreshAvailability() {
	b.Rerender()
}

// Rerender redraws the grid from current state without fetching.
func (b *Browser) Rerender() {
	b.mu.Lock()
	view := b.view
	grid := b.gridLocked()
	b.mu.Unlock()

	if view != nil {
		view.RenderGrid(grid)
	}
}

// Grid returns the current render model.
func (b *Browser) Grid() Grid {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gridLocked()
}

func (b *Browser) totalPagesLocked() int {
	if b.total == 0 {
		return 0
	}
	return (b.total + b.pageSize - 1) / b.pageSize
}

func (b *Browser) gridLocked() Grid {
	totalPages := b.totalPagesLocked()

	grid := Grid{
		Phase:       b.phase,
		Page:        b.page,
		TotalPages:  totalPages,
		TotalCount:  b.total,
		PrevEnabled: b.page > 1,
		NextEnabled: b.page < totalPages && b.total > 0,
		Categories:  b.categories,
		Brands:      b.brands,
	}

	if b.total > 0 {
		grid.RangeStart = (b.page-1)*b.pageSize + 1
		grid.RangeEnd = b.page * b.pageSize
		if grid.RangeEnd > b.total {
			grid.RangeEnd = b.total
		}
	}

	var selected map[uint]bool
	if b.selection != nil {
		selected = b.selection()
	}

	grid.Cards = make([]Card, len(b.items))
	for i, p := range b.items {
		grid.Cards[i] = Card{
			ID:       p.ID,
			Name:     p.Name,
			Brand:    p.Brand,
			Price:    b.currency + p.Price.StringFixed(2),
			Stock:    p.Stock,
			InStock:  p.Stock > 0,
			Image:    p.Image,
			Disabled: selected[p.ID],
		}
	}
	return grid
}
