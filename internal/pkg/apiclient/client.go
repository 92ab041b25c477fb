// internal/pkg/apiclient/client.go
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/salesdesk/internal/config"
)

// Product is a catalog entry as returned by the product listing endpoint.
type Product struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Brand string          `json:"brand,omitempty"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Image string          `json:"image,omitempty"`
}

// ProductPage is one page of listing results.
type ProductPage struct {
	Results []Product `json:"results"`
	Count   int       `json:"count"`
}

// Ref is an id/name pair, used for category and brand listings.
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Customer is the record returned by a successful quick-create.
type Customer struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CustomerCreateResponse is the quick-create endpoint's payload.
type CustomerCreateResponse struct {
	Success  bool      `json:"success"`
	Customer *Customer `json:"customer,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// ProductFilters narrows a product listing request. Empty fields are
// omitted from the query string.
type ProductFilters struct {
	Search   string
	Category string
	Brand    string
}

// Client talks to the sales backend endpoints the order form depends on.
// Mutating calls carry the CSRF token header.
type Client struct {
	baseURL   string
	csrfToken string
	client    *http.Client
	log       *logrus.Logger
}

// New creates an API client from the client configuration section.
func New(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.Client.BaseURL, "/"),
		csrfToken: cfg.Client.CSRFToken,
		client:    &http.Client{Timeout: cfg.Client.Timeout},
		log:       log,
	}
}

// ProductPrice fetches the authoritative unit price of a product.
func (c *Client) ProductPrice(ctx context.Context, productID uint) (decimal.Decimal, error) {
	var payload struct {
		Price decimal.Decimal `json:"price"`
	}
	path := fmt.Sprintf("/sale/api/product/%d/price/", productID)
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch product price: %w", err)
	}
	return payload.Price, nil
}

// Categories fetches the category filter options.
func (c *Client) Categories(ctx context.Context) ([]Ref, error) {
	var refs []Ref
	if err := c.getJSON(ctx, "/product/api/categories/", nil, &refs); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return refs, nil
}

// Brands fetches the brand filter options.
func (c *Client) Brands(ctx context.Context) ([]Ref, error) {
	var refs []Ref
	if err := c.getJSON(ctx, "/product/api/brands/", nil, &refs); err != nil {
		return nil, fmt.Errorf("failed to fetch brands: %w", err)
	}
	return refs, nil
}

// ListProducts fetches one page of the product catalog. Filtering and
// pagination are entirely server-side. The endpoint may answer with a
// paginated envelope or a bare array; both are accepted.
func (c *Client) ListProducts(ctx context.Context, filters ProductFilters, page, pageSize int) (*ProductPage, error) {
	params := url.Values{}
	if filters.Search != "" {
		params.Set("search", filters.Search)
	}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.Brand != "" {
		params.Set("brand", filters.Brand)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	body, err := c.get(ctx, "/product/api/products/", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return decodeProductPage(body)
}

// CreateCustomer posts the quick-create form. The server reports
// domain-level failures inside the payload rather than via status codes.
func (c *Client) CreateCustomer(ctx context.Context, name, phone, address string) (*CustomerCreateResponse, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("phone", phone)
	form.Set("address", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/people/customers/create-ajax/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build customer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRFToken", c.csrfToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customer create request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("customer create returned status %d", resp.StatusCode)
	}

	var payload CustomerCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode customer response: %w", err)
	}
	return &payload, nil
}

// Delete issues a confirmed destructive request against target, which may
// be an absolute URL or a path relative to the base URL. Any non-2xx
// status is a failure.
func (c *Client) Delete(ctx context.Context, target string) error {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(target, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRFToken", c.csrfToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeProductPage accepts either the paginated envelope or a bare
// product array and normalizes both into a ProductPage.
func decodeProductPage(body []byte) (*ProductPage, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var items []Product
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to decode product list: %w", err)
		}
		return &ProductPage{Results: items, Count: len(items)}, nil
	}

	var page ProductPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode product page: %w", err)
	}
	if page.Count == 0 {
		page.Count = len(page.Results)
	}
	return &page, nil
}
