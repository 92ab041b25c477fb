// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/your-org/salesdesk/internal/config"
	"gorm.io/gorm"
)

// Service handles catalog queries for the order-entry endpoints
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// ListRequest represents product listing query parameters
type ListRequest struct {
	Search   string `form:"search"`
	Category uint   `form:"category"`
	Brand    uint   `form:"brand"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=12"`
}

// ListItem is a product as the catalog browser consumes it
type ListItem struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Brand string          `json:"brand,omitempty"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
	Image string          `json:"image,omitempty"`
}

// ListResponse is one page of catalog results
type ListResponse struct {
	Results []ListItem `json:"results"`
	Count   int64      `json:"count"`
}

// Ref is an id/name pair for the filter dropdowns
type Ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// List retrieves active products with filtering and pagination
func (s *Service) List(req *ListRequest) (*ListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).
		Preload("Brand").
		Where("products.is_active = ?", true)

	if req.Category > 0 {
		query = query.Where("category_id = ?", req.Category)
	}

	if req.Brand > 0 {
		query = query.Where("brand_id = ?", req.Brand)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.
			Joins("LEFT JOIN brands ON brands.id = products.brand_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(products.sku) LIKE ? OR LOWER(brands.name) LIKE ?",
				search, search, search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("products.name ASC, products.id ASC").Offset(offset).Limit(req.PageSize).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	items := make([]ListItem, len(products))
	for i, p := range products {
		items[i] = ListItem{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Image: p.Image,
		}
		if p.Brand != nil {
			items[i].Brand = p.Brand.Name
		}
	}

	return &ListResponse{Results: items, Count: total}, nil
}

// Categories returns active categories for the filter dropdown
func (s *Service) Categories() ([]Ref, error) {
	var categories []Category
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	refs := make([]Ref, len(categories))
	for i, c := range categories {
		refs[i] = Ref{ID: c.ID, Name: c.Name}
	}
	return refs, nil
}

// Brands returns active brands for the filter dropdown
func (s *Service) Brands() ([]Ref, error) {
	var brands []Brand
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve brands: %w", err)
	}

	refs := make([]Ref, len(brands))
	for i, b := range brands {
		refs[i] = Ref{ID: b.ID, Name: b.Name}
	}
	return refs, nil
}

// Price returns the unit price for a product, cached in Redis so rapid
// row edits don't hammer the database
func (s *Service) Price(productID uint) (decimal.Decimal, error) {
	ctx := context.Background()
	priceKey := fmt.Sprintf("price:product:%d", productID)

	// Cache trouble is not fatal; fall through to the database.
	if cached, err := s.redisClient.Get(ctx, priceKey).Result(); err == nil {
		if price, perr := decimal.NewFromString(cached); perr == nil {
			return price, nil
		}
	}

	var p Product
	result := s.db.Select("id", "price").Where("id = ? AND is_active = ?", productID, true).First(&p)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return decimal.Zero, fmt.Errorf("product not found")
		}
		return decimal.Zero, fmt.Errorf("failed to retrieve product price: %w", result.Error)
	}

	s.redisClient.Set(ctx, priceKey, p.Price.String(), s.cacheTTL())

	return p.Price, nil
}

func (s *Service) cacheTTL() time.Duration {
	if s.config != nil && s.config.Redis.PriceTTL > 0 {
		return s.config.Redis.PriceTTL
	}
	return 5 * time.Minute
}
