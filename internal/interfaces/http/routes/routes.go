// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/salesdesk/internal/config"
	"github.com/your-org/salesdesk/internal/interfaces/http/handlers"
	"github.com/your-org/salesdesk/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every endpoint the order form consumes. Paths mirror
// the page's expectations, trailing slashes included.
func SetupRoutes(engine *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, redisClient, cfg)
	customerHandler := handlers.NewCustomerHandler(db)
	saleHandler := handlers.NewSaleHandler(db)

	// Catalog endpoints (read-only)
	productAPI := engine.Group("/product/api")
	{
		productAPI.GET("/products/", productHandler.ListProducts)
		productAPI.GET("/categories/", productHandler.ListCategories)
		productAPI.GET("/brands/", productHandler.ListBrands)
	}

	// Row price lookup
	engine.GET("/sale/api/product/:id/price/", productHandler.ProductPrice)

	// Mutating endpoints carry the CSRF token
	csrf := middleware.CSRF(cfg)
	engine.POST("/people/customers/create-ajax/", csrf, customerHandler.CreateAjax)
	engine.POST("/sale/:id/delete/", csrf, saleHandler.Delete)
}
