package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"checkout/internal/models"
	"checkout/internal/notify"
	"checkout/internal/pricing"
	"checkout/internal/repositories"
	"checkout/internal/validation"
)

// EventPublisher publishes order events to a message broker. A nil publisher
// means event publishing is disabled.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// CheckoutService orchestrates a checkout attempt: validate the submitted
// session, persist the order aggregate, then fan out best-effort
// notifications. Persistence success is the sole gate for success —
// notification outcomes are logged and never affect the result.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	calc      pricing.Calculator
	notifiers []notify.Notifier
	events    EventPublisher
	validate  *validator.Validate
}

// NewCheckoutService creates a new CheckoutService. notifiers may be empty
// and events may be nil; both only disable the corresponding channels.
func NewCheckoutService(orderRepo repositories.OrderRepository, calc pricing.Calculator, notifiers []notify.Notifier, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		calc:      calc,
		notifiers: notifiers,
		events:    events,
		validate:  validation.New(),
	}
}

// Totals computes the pricing figures for a cart under the configured rates.
func (s *CheckoutService) Totals(items []models.CartItem) pricing.Totals {
	return s.calc.Totals(items)
}

// BuildOrder assembles the persistable aggregate from a validated session and
// its pricing figures. Callers must have validated the session first.
func BuildOrder(sess *models.CheckoutSession, totals pricing.Totals) *models.Order {
	items := make([]models.OrderItem, 0, len(sess.CartItems))
	for _, item := range sess.CartItems {
		items = append(items, models.OrderItem{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Color:       item.Color,
			ImageURL:    item.ImageURL,
			LineTotal:   item.LineTotal(),
		})
	}

	return &models.Order{
		ID:            uuid.New().String(),
		OrderNumber:   sess.OrderNumber,
		CustomerName:  fmt.Sprintf("%s %s", sess.BillingDetails.FirstName, sess.BillingDetails.LastName),
		CustomerEmail: sess.BillingDetails.Email,
		PaymentMethod: string(sess.SelectedPaymentMethod),
		OrderNotes:    sess.OrderNotes,
		TotalAmount:   totals.Total,
		OrderDate:     time.Now().UTC(),
		Billing:       sess.BillingDetails,
		Shipping:      sess.ShippingDetails,
		Items:         items,
	}
}

// PlaceOrder runs one checkout attempt. On a validation failure it returns a
// *ValidationError and the session is left untouched; nothing is persisted or
// sent. On a persistence failure it returns a *StoreError with the cause
// logged. Once the order is committed the attempt always succeeds:
// notification failures are logged, never surfaced, never retried.
func (s *CheckoutService) PlaceOrder(sess *models.CheckoutSession) (*models.Order, pricing.Totals, error) {
	if err := s.validate.Struct(sess); err != nil {
		return nil, pricing.Totals{}, &ValidationError{Fields: validation.FieldErrors(err)}
	}

	if sess.OrderNumber == "" {
		sess.OrderNumber = models.NewOrderNumber()
	}

	totals := s.calc.Totals(sess.CartItems)
	order := BuildOrder(sess, totals)

	if err := s.orderRepo.Create(order); err != nil {
		log.Printf("Error persisting order %s: %v", order.OrderNumber, err)
		return nil, pricing.Totals{}, &StoreError{Err: err}
	}

	// The order is durable from here on. Every channel below is
	// best-effort and independent of the others.
	for _, n := range s.notifiers {
		if err := n.SendOrderConfirmation(order, totals); err != nil {
			log.Printf("Warning: notification failed for order %s: %v", order.OrderNumber, err)
		}
	}
	s.publishOrderPlaced(order)

	return order, totals, nil
}

func (s *CheckoutService) publishOrderPlaced(order *models.Order) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"order_number":   order.OrderNumber,
		"customer_name":  order.CustomerName,
		"customer_email": order.CustomerEmail,
		"payment_method": order.PaymentMethod,
		"total_amount":   order.TotalAmount,
		"order_date":     order.OrderDate,
	})
	if err != nil {
		log.Printf("Failed to marshal order %s event: %v", order.OrderNumber, err)
		return
	}

	if err := s.events.Publish("order.placed", body); err != nil {
		log.Printf("Warning: failed to publish order.placed event for order %s: %v", order.OrderNumber, err)
	} else {
		log.Printf("Published order.placed event for order %s", order.OrderNumber)
	}
}
