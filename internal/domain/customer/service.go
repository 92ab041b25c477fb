// internal/domain/customer/service.go
package customer

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Service handles customer business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new customer service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// QuickCreate creates a customer from the order form's modal. Only the
// name is required; phone and address are optional conveniences.
func (s *Service) QuickCreate(name, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}

	c := Customer{
		Name:    name,
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return &c, nil
}
