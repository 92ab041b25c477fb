// internal/interfaces/http/handlers/sale.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/salesdesk/internal/domain/sale"
	"gorm.io/gorm"
)

// SaleHandler handles persisted-sale endpoints
type SaleHandler struct {
	saleService *sale.Service
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(db *gorm.DB) *SaleHandler {
	return &SaleHandler{
		saleService: sale.NewService(db),
	}
}

// Delete handles POST /sale/:id/delete/
func (h *SaleHandler) Delete(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sale ID",
		})
		return
	}

	if err := h.saleService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Failed to delete sale",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
