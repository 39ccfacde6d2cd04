// Package notify holds the outbound notification channels fired after an
// order is committed. Every channel is best-effort: adapters return an error
// for the caller to log, and nothing here ever blocks or reverses a checkout.
package notify

import (
	"checkout/internal/models"
	"checkout/internal/pricing"
)

// Notifier is the capability shared by all confirmation channels.
type Notifier interface {
	SendOrderConfirmation(order *models.Order, totals pricing.Totals) error
}
