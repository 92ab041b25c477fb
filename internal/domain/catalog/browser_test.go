package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/salesdesk/internal/config"
	"github.com/your-org/salesdesk/internal/pkg/apiclient"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		Form: config.FormConfig{
			CatalogPageSize: 12,
			SearchDebounce:  10 * time.Millisecond,
			CurrencySymbol:  "৳",
		},
	}
}

// fakeLister serves a fixed product set with server-side paging, the way
// the listing endpoint does.
type fakeLister struct {
	mu       sync.Mutex
	products []apiclient.Product
	err      error
	requests []apiclient.ProductFilters
	// block, when non-nil, is received from before a request returns.
	block chan struct{}
}

func makeProducts(n int) []apiclient.Product {
	out := make([]apiclient.Product, n)
	for i := range out {
		out[i] = apiclient.Product{
			ID:    uint(i + 1),
			Name:  fmt.Sprintf("Product %d", i+1),
			Price: decimal.NewFromInt(int64(10 * (i + 1))),
			Stock: i % 3,
		}
	}
	return out
}

func (f *fakeLister) ListProducts(_ context.Context, filters apiclient.ProductFilters, page, pageSize int) (*apiclient.ProductPage, error) {
	f.mu.Lock()
	f.requests = append(f.requests, filters)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(f.products) {
		start = len(f.products)
	}
	if end > len(f.products) {
		end = len(f.products)
	}
	return &apiclient.ProductPage{
		Results: f.products[start:end],
		Count:   len(f.products),
	}, nil
}

func (f *fakeLister) Categories(context.Context) ([]apiclient.Ref, error) {
	return []apiclient.Ref{{ID: 1, Name: "Beverages"}}, nil
}

func (f *fakeLister) Brands(context.Context) ([]apiclient.Ref, error) {
	return []apiclient.Ref{{ID: 1, Name: "Fresh"}}, nil
}

func (f *fakeLister) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// gridRecorder keeps rendered grids for inspection.
type gridRecorder struct {
	mu    sync.Mutex
	grids []Grid
}

func (r *gridRecorder) RenderGrid(g Grid) {
	r.mu.Lock()
	r.grids = append(r.grids, g)
	r.mu.Unlock()
}

func (r *gridRecorder) phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, len(r.grids))
	for i, g := range r.grids {
		out[i] = g.Phase
	}
	return out
}

func TestBrowser_PaginationBounds(t *testing.T) {
	lister := &fakeLister{products: makeProducts(25)}
	b := NewBrowser(lister, nil, testConfig(), testLogger())
	ctx := context.Background()

	b.Load(ctx)
	grid := b.Grid()
	if grid.Page != 1 || grid.TotalPages != 3 || grid.TotalCount != 25 {
		t.Fatalf("page=%d totalPages=%d count=%d, want 1/3/25", grid.Page, grid.TotalPages, grid.TotalCount)
	}
	if grid.PrevEnabled {
		t.Error("prev should be disabled on page 1")
	}
	if !grid.NextEnabled {
		t.Error("next should be enabled on page 1 of 3")
	}
	if grid.RangeStart != 1 || grid.RangeEnd != 12 {
		t.Errorf("range %d-%d, want 1-12", grid.RangeStart, grid.RangeEnd)
	}
	if len(grid.Cards) != 12 {
		t.Errorf("cards = %d, want 12", len(grid.Cards))
	}

	// Walking off the end stops at the last page.
	b.NextPage(ctx)
	b.NextPage(ctx)
	b.NextPage(ctx)
	grid = b.Grid()
	if grid.Page != 3 {
		t.Fatalf("page = %d, want 3", grid.Page)
	}
	if grid.NextEnabled {
		t.Error("next should be disabled on the last page")
	}
	if !grid.PrevEnabled {
		t.Error("prev should be enabled on the last page")
	}
	if grid.RangeStart != 25 || grid.RangeEnd != 25 {
		t.Errorf("range %d-%d, want 25-25", grid.RangeStart, grid.RangeEnd)
	}
	if len(grid.Cards) != 1 {
		t.Errorf("cards = %d, want 1", len(grid.Cards))
	}

	// And walking back off the start stays on page 1.
	b.SetPage(ctx, 1)
	b.PrevPage(ctx)
	if got := b.Grid().Page; got != 1 {
		t.Errorf("page = %d, want 1", got)
	}
}

func TestBrowser_EmptyResult(t *testing.T) {
	lister := &fakeLister{}
	b := NewBrowser(lister, nil, testConfig(), testLogger())

	b.Load(context.Background())
	grid := b.Grid()
	if grid.Phase != PhaseLoaded {
		t.Fatalf("phase = %v, want loaded", grid.Phase)
	}
	if grid.TotalPages != 0 || grid.PrevEnabled || grid.NextEnabled {
		t.Errorf("empty set should disable paging, got %+v", grid)
	}
	if grid.RangeStart != 0 || grid.RangeEnd != 0 {
		t.Errorf("range %d-%d, want 0-0", grid.RangeStart, grid.RangeEnd)
	}
}

func TestBrowser_ErrorPhase(t *testing.T) {
	lister := &fakeLister{err: errors.New("listing unavailable")}
	b := NewBrowser(lister, nil, testConfig(), testLogger())
	view := &gridRecorder{}
	b.SetView(view)

	b.Load(context.Background())

	phases := view.phases()
	if len(phases) != 2 || phases[0] != PhaseLoading || phases[1] != PhaseError {
		t.Errorf("phases = %v, want [loading error]", phases)
	}
	if cards := b.Grid().Cards; len(cards) != 0 {
		t.Errorf("cards = %d, want 0 after error", len(cards))
	}
}

func TestBrowser_SelectedProductsDisabled(t *testing.T) {
	lister := &fakeLister{products: makeProducts(3)}
	selection := func() map[uint]bool { return map[uint]bool{2: true} }
	b := NewBrowser(lister, selection, testConfig(), testLogger())

	b.Load(context.Background())
	grid := b.Grid()
	for _, card := range grid.Cards {
		want := card.ID == 2
		if card.Disabled != want {
			t.Errorf("card %d disabled = %v, want %v", card.ID, card.Disabled, want)
		}
	}
}

func TestBrowser_CardRendering(t *testing.T) {
	lister := &fakeLister{products: makeProducts(3)}
	b := NewBrowser(lister, nil, testConfig(), testLogger())

	b.Load(context.Background())
	cards := b.Grid().Cards

	if cards[0].Price != "৳10.00" {
		t.Errorf("price = %q, want ৳10.00", cards[0].Price)
	}
	// Stock cycles 0,1,2: the first product is out of stock.
	if cards[0].InStock {
		t.Error("zero-stock card should be out of stock")
	}
	if !cards[1].InStock {
		t.Error("in-stock card flagged out of stock")
	}
}

func TestBrowser_SearchDebounce(t *testing.T) {
	lister := &fakeLister{products: makeProducts(5)}
	b := NewBrowser(lister, nil, testConfig(), testLogger())
	ctx := context.Background()

	b.SetSearch(ctx, "m")
	b.SetSearch(ctx, "mi")
	b.SetSearch(ctx, "milk")

	deadline := time.Now().Add(time.Second)
	for lister.requestCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	// Let any spurious extra timers fire.
	time.Sleep(50 * time.Millisecond)

	if got := lister.requestCount(); got != 1 {
		t.Fatalf("requests = %d, want 1 (rapid edits collapse)", got)
	}
	lister.mu.Lock()
	search := lister.requests[0].Search
	lister.mu.Unlock()
	if search != "milk" {
		t.Errorf("search = %q, want final text milk", search)
	}
	if got := b.Grid().Page; got != 1 {
		t.Errorf("page = %d, want reset to 1", got)
	}
}

// A slow response must not clobber the grid once a newer request has
// been issued.
func TestBrowser_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	lister := &fakeLister{products: makeProducts(25), block: release}
	b := NewBrowser(lister, nil, testConfig(), testLogger())
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		b.Load(ctx) // blocks inside the lister
		close(done)
	}()
	deadline := time.Now().Add(time.Second)
	for lister.requestCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	// The category change supersedes the blocked request and completes
	// first; only then does the original response land.
	lister.mu.Lock()
	lister.block = nil
	lister.mu.Unlock()
	b.SetCategory(ctx, "1")
	grid := b.Grid()
	if grid.Phase != PhaseLoaded || grid.Page != 1 {
		t.Fatalf("grid after category change: phase=%v page=%d", grid.Phase, grid.Page)
	}

	close(release)
	<-done

	if got := b.Grid(); got.Phase != PhaseLoaded || got.Page != grid.Page || got.TotalCount != grid.TotalCount {
		t.Errorf("stale response changed the grid: %+v", got)
	}
	lister.mu.Lock()
	last := lister.requests[len(lister.requests)-1]
	lister.mu.Unlock()
	if last.Category != "1" {
		t.Errorf("last request category = %q, want 1", last.Category)
	}
}

func TestBrowser_FilterOptionsLoaded(t *testing.T) {
	lister := &fakeLister{}
	b := NewBrowser(lister, nil, testConfig(), testLogger())

	b.LoadFilterOptions(context.Background())
	grid := b.Grid()
	if len(grid.Categories) != 1 || grid.Categories[0].Name != "Beverages" {
		t.Errorf("categories = %v", grid.Categories)
	}
	if len(grid.Brands) != 1 || grid.Brands[0].Name != "Fresh" {
		t.Errorf("brands = %v", grid.Brands)
	}
}

func TestBrowser_ClearFilters(t *testing.T) {
	lister := &fakeLister{products: makeProducts(25)}
	b := NewBrowser(lister, nil, testConfig(), testLogger())
	ctx := context.Background()

	b.SetCategory(ctx, "2")
	b.SetPage(ctx, 2)
	b.ClearFilters(ctx)

	lister.mu.Lock()
	last := lister.requests[len(lister.requests)-1]
	lister.mu.Unlock()
	if last != (apiclient.ProductFilters{}) {
		t.Errorf("filters = %+v, want empty", last)
	}
	if got := b.Grid().Page; got != 1 {
		t.Errorf("page = %d, want 1", got)
	}
}
