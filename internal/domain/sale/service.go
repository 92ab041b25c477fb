// internal/domain/sale/service.go
package sale

import (
	"fmt"

	"gorm.io/gorm"
)

// Service handles sale business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new sale service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get retrieves a sale with its items
func (s *Service) Get(id uint) (*Sale, error) {
	var sale Sale
	result := s.db.Preload("Customer").Preload("Items").Where("id = ?", id).First(&sale)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("sale not found")
		}
		return nil, fmt.Errorf("failed to retrieve sale: %w", result.Error)
	}
	return &sale, nil
}

// Delete removes a sale and its items after the user confirmed the
// destructive action
func (s *Service) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale Sale
		result := tx.Where("id = ?", id).First(&sale)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				return fmt.Errorf("sale not found")
			}
			return fmt.Errorf("failed to find sale: %w", result.Error)
		}

		if err := tx.Where("sale_id = ?", id).Delete(&SaleItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete sale items: %w", err)
		}

		if err := tx.Delete(&sale).Error; err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}

		return nil
	})
}
