// internal/interfaces/http/handlers/customer.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/salesdesk/internal/domain/customer"
	"gorm.io/gorm"
)

// CustomerHandler handles the quick-create endpoint behind the order
// form's customer modal
type CustomerHandler struct {
	customerService *customer.Service
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{
		customerService: customer.NewService(db),
	}
}

// CreateAjax handles POST /people/customers/create-ajax/
//
// The modal expects domain failures in the payload, not the status code,
// so validation problems still answer 200 with success=false.
func (h *CustomerHandler) CreateAjax(c *gin.Context) {
	name := c.PostForm("name")
	phone := c.PostForm("phone")
	address := c.PostForm("address")

	created, err := h.customerService.QuickCreate(name, phone, address)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"customer": gin.H{
			"id":   created.ID,
			"name": created.Name,
		},
	})
}
