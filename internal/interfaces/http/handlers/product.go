// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/salesdesk/internal/config"
	"github.com/your-org/salesdesk/internal/domain/product"
	"gorm.io/gorm"
)

// ProductHandler handles catalog endpoints consumed by the order form
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: product.NewService(db, redisClient, cfg),
		config:         cfg,
	}
}

// ListProducts handles GET /product/api/products/
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var req product.ListRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	// Set default values
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 || req.PageSize > 100 {
		req.PageSize = h.config.Form.CatalogPageSize
	}

	response, err := h.productService.List(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListCategories handles GET /product/api/categories/
func (h *ProductHandler) ListCategories(c *gin.Context) {
	refs, err := h.productService.Categories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve categories",
		})
		return
	}

	c.JSON(http.StatusOK, refs)
}

// ListBrands handles GET /product/api/brands/
func (h *ProductHandler) ListBrands(c *gin.Context) {
	refs, err := h.productService.Brands()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve brands",
		})
		return
	}

	c.JSON(http.StatusOK, refs)
}

// ProductPrice handles GET /sale/api/product/:id/price/
func (h *ProductHandler) ProductPrice(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	price, err := h.productService.Price(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"price": price,
	})
}
