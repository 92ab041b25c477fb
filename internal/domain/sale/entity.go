// internal/domain/sale/entity.go
package sale

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/salesdesk/internal/domain/customer"
	"github.com/your-org/salesdesk/internal/domain/product"
	"gorm.io/gorm"
)

// Sale statuses
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
)

// Sale represents a persisted sales order
type Sale struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	InvoiceNo  string          `gorm:"uniqueIndex;not null;size:100" json:"invoice_no"`
	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	SaleDate   time.Time       `json:"sale_date"`
	Status     string          `gorm:"size:20;default:draft" json:"status"`
	Discount   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"discount"`
	Tax        decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"tax"`
	Paid       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"paid"`
	Due        decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"due"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Customer customer.Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`
	Items    []SaleItem        `gorm:"foreignKey:SaleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// SaleItem represents one line of a persisted sale
type SaleItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	SaleID          uint            `gorm:"not null;index" json:"sale_id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	Quantity        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"discount_amount"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Product product.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"product,omitempty"`
}
