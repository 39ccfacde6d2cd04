package models

import (
	"strings"

	"github.com/google/uuid"
)

// PaymentMethod identifies how the customer intends to pay. It is recorded on
// the order as metadata only; no settlement happens in this system.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "CreditCard"
	PaymentPayPal       PaymentMethod = "PayPal"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
)

// BillingDetails holds the customer's billing information. All fields are
// required; email and phone must match their respective grammars.
type BillingDetails struct {
	FirstName  string `json:"first_name" validate:"required" gorm:"type:varchar(100)"`
	LastName   string `json:"last_name" validate:"required" gorm:"type:varchar(100)"`
	Address    string `json:"address" validate:"required" gorm:"type:varchar(255)"`
	City       string `json:"city" validate:"required" gorm:"type:varchar(100)"`
	PostalCode string `json:"postal_code" validate:"required" gorm:"type:varchar(20)"`
	Phone      string `json:"phone" validate:"required,phone" gorm:"type:varchar(30)"`
	Email      string `json:"email" validate:"required,email" gorm:"type:varchar(255)"`
	Country    string `json:"country" validate:"required" gorm:"type:varchar(100)"`
}

// ShippingDetails holds the delivery address. Country is optional.
type ShippingDetails struct {
	Address    string `json:"address" validate:"required" gorm:"type:varchar(255)"`
	City       string `json:"city" validate:"required" gorm:"type:varchar(100)"`
	PostalCode string `json:"postal_code" validate:"required" gorm:"type:varchar(20)"`
	Country    string `json:"country,omitempty" gorm:"type:varchar(100)"`
}

// CheckoutSession is one in-progress checkout attempt: the cart plus the
// submitted form data. The order number is generated once at session
// construction and stays stable across re-display after validation failure.
type CheckoutSession struct {
	CartItems             []CartItem      `json:"cart_items" validate:"required,min=1,dive"`
	BillingDetails        BillingDetails  `json:"billing_details"`
	ShippingDetails       ShippingDetails `json:"shipping_details"`
	SelectedPaymentMethod PaymentMethod   `json:"payment_method" validate:"required,oneof=CreditCard PayPal BankTransfer"`
	OrderNotes            string          `json:"order_notes,omitempty"`
	SameAsShipping        bool            `json:"same_as_shipping"`
	OrderNumber           string          `json:"order_number"`
}

// NewCheckoutSession starts a checkout attempt over the given cart with a
// freshly generated order number.
func NewCheckoutSession(items []CartItem) *CheckoutSession {
	return &CheckoutSession{
		CartItems:      items,
		SameAsShipping: true,
		OrderNumber:    NewOrderNumber(),
	}
}

// NewOrderNumber generates a short human-readable order identifier: the first
// eight hex characters of a random UUID, uppercased.
func NewOrderNumber() string {
	compact := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(compact[:8])
}
