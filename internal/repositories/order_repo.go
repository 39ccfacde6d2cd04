package repositories

import (
	"checkout/internal/models"
)

// OrderRepository defines the interface for order data access. Create must
// write the full aggregate (order, items, billing, shipping) atomically.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetAll() ([]models.Order, error)
}
