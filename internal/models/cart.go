package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CartItem represents a single line in the shopping cart. Items are immutable
// once placed on an order.
type CartItem struct {
	ProductName string          `json:"product_name" validate:"required"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required,gt=0"`
	Color       string          `json:"color,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
}

// LineTotal returns quantity times unit price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SerializeCart encodes a cart to the text blob stored by the cart source
// (the session store, in this application).
func SerializeCart(items []CartItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to serialize cart: %w", err)
	}
	return string(data), nil
}

// DeserializeCart decodes a cart from its stored text blob. An empty blob
// yields an empty cart.
func DeserializeCart(blob string) ([]CartItem, error) {
	if blob == "" {
		return []CartItem{}, nil
	}
	var items []CartItem
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("failed to deserialize cart: %w", err)
	}
	return items, nil
}
