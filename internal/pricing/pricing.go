// Package pricing derives checkout totals from a cart. Computations are pure
// and use exact decimal arithmetic so currency figures carry no binary
// floating-point drift.
package pricing

import (
	"github.com/shopspring/decimal"

	"checkout/internal/models"
)

// Calculator computes cart totals under a configured tax rate and flat
// shipping rate. Both parameters are injected; the engine holds no other
// state.
type Calculator struct {
	TaxRate          decimal.Decimal // non-negative fraction, e.g. 0.10
	ShippingFlatRate decimal.Decimal // non-negative amount, e.g. 5.00
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(taxRate, shippingFlatRate decimal.Decimal) Calculator {
	return Calculator{TaxRate: taxRate, ShippingFlatRate: shippingFlatRate}
}

// Totals are the four derived pricing figures for a cart. All values are
// rounded to two decimal places.
type Totals struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`
}

// Totals computes subtotal, tax, shipping cost and grand total for the cart.
// An empty cart yields zero for all four figures, including shipping.
func (c Calculator) Totals(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(c.TaxRate).Round(2)

	shipping := decimal.Zero
	if len(items) > 0 {
		shipping = c.ShippingFlatRate.Round(2)
	}

	return Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        subtotal.Add(tax).Add(shipping),
	}
}
