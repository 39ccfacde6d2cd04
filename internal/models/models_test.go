package models_test

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"checkout/internal/models"
)

func TestNewOrderNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := models.NewOrderNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	// 100 draws from a 16^8 space should not collide.
	assert.Len(t, seen, 100)
}

func TestNewCheckoutSession(t *testing.T) {
	items := []models.CartItem{
		{ProductName: "Blue T-Shirt", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00")},
	}

	sess := models.NewCheckoutSession(items)

	assert.Equal(t, items, sess.CartItems)
	assert.True(t, sess.SameAsShipping)
	assert.Len(t, sess.OrderNumber, 8)

	// The order number is assigned once and stays put on the session.
	first := sess.OrderNumber
	assert.Equal(t, first, sess.OrderNumber)
}

func TestCartItem_LineTotal(t *testing.T) {
	item := models.CartItem{
		ProductName: "T-Shirt",
		Quantity:    3,
		UnitPrice:   decimal.RequireFromString("25.00"),
	}

	assert.Equal(t, "75.00", item.LineTotal().StringFixed(2))
}

func TestCartSerialization_RoundTrip(t *testing.T) {
	items := []models.CartItem{
		{ProductName: "Blue T-Shirt", Quantity: 2, UnitPrice: decimal.RequireFromString("25.00"), Color: "Blue"},
		{ProductName: "Red Hat", Quantity: 1, UnitPrice: decimal.RequireFromString("15.00"), Color: "Red", ImageURL: "https://example.com/hat.png"},
	}

	blob, err := models.SerializeCart(items)
	assert.NoError(t, err)

	restored, err := models.DeserializeCart(blob)
	assert.NoError(t, err)
	assert.Len(t, restored, 2)
	assert.Equal(t, "Blue T-Shirt", restored[0].ProductName)
	assert.Equal(t, 2, restored[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(restored[0].UnitPrice))
	assert.Equal(t, "Red", restored[1].Color)
	assert.Equal(t, "https://example.com/hat.png", restored[1].ImageURL)
}

func TestDeserializeCart_Empty(t *testing.T) {
	items, err := models.DeserializeCart("")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeserializeCart_Corrupt(t *testing.T) {
	_, err := models.DeserializeCart("{not json")
	assert.Error(t, err)
}
