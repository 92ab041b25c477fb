// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/salesdesk/internal/domain/customer"
	"github.com/your-org/salesdesk/internal/domain/product"
	"github.com/your-org/salesdesk/internal/domain/sale"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&product.Category{},
		&product.Brand{},
		&product.Product{},
		&customer.Customer{},
		&sale.Sale{},
		&sale.SaleItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed")
	return nil
}

// SeedInitialData seeds a small catalog for development
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("🌱 Seeding initial catalog data...")

	categories := []product.Category{
		{Name: "Beverages", IsActive: true},
		{Name: "Snacks", IsActive: true},
		{Name: "Household", IsActive: true},
	}
	if err := m.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	brands := []product.Brand{
		{Name: "Fresh", IsActive: true},
		{Name: "Pran", IsActive: true},
	}
	if err := m.db.Create(&brands).Error; err != nil {
		return fmt.Errorf("failed to seed brands: %w", err)
	}

	products := []product.Product{
		{SKU: "BV-001", Name: "Drinking Water 1L", Price: decimal.NewFromInt(25), Stock: 120, CategoryID: &categories[0].ID, BrandID: &brands[0].ID, IsActive: true},
		{SKU: "BV-002", Name: "Mango Juice 250ml", Price: decimal.NewFromInt(35), Stock: 60, CategoryID: &categories[0].ID, BrandID: &brands[1].ID, IsActive: true},
		{SKU: "SN-001", Name: "Potato Crackers", Price: decimal.NewFromInt(20), Stock: 0, CategoryID: &categories[1].ID, BrandID: &brands[1].ID, IsActive: true},
		{SKU: "HH-001", Name: "Dish Soap 500ml", Price: decimal.RequireFromString("85.50"), Stock: 40, CategoryID: &categories[2].ID, IsActive: true},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial catalog data seeded")
	return nil
}
