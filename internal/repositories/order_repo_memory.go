package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkout/internal/models"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// It backs tests and runs without a database DSN configured.
type MemoryOrderRepository struct {
	orders map[string]models.Order // keyed by order number
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores the full aggregate under the map lock, so two concurrent
// submissions can never interleave within one order.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderNumber]; exists {
		return fmt.Errorf("order with number %s already exists", order.OrderNumber)
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	stored := *order
	stored.Items = make([]models.OrderItem, len(order.Items))
	copy(stored.Items, order.Items)
	r.orders[order.OrderNumber] = stored
	return nil
}

// GetByOrderNumber returns an order by its human-readable order number.
func (r *MemoryOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderNumber]
	if !ok {
		return nil, fmt.Errorf("order with number %s not found", orderNumber)
	}
	return &order, nil
}

// GetAll returns all orders.
func (r *MemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}
