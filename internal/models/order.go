package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a cart line frozen onto a persisted order.
type OrderItem struct {
	ID          uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID     string          `json:"-" gorm:"index;type:varchar(36)"`
	ProductName string          `json:"product_name" gorm:"type:varchar(255)"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(18,2)"`
	Color       string          `json:"color,omitempty" gorm:"type:varchar(50)"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:decimal(18,2)"`
}

// Order is the persisted checkout result. It is created exactly once per
// successful submission and never mutated afterwards. Billing and shipping
// details are embedded into the order row; items live in their own table so
// the whole aggregate is written in one transaction.
type Order struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber   string          `json:"order_number" gorm:"uniqueIndex;type:varchar(8)"`
	CustomerName  string          `json:"customer_name" gorm:"type:varchar(200)"`
	CustomerEmail string          `json:"customer_email" gorm:"type:varchar(255)"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(30)"`
	OrderNotes    string          `json:"order_notes,omitempty" gorm:"type:varchar(1000)"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:decimal(18,2)"`
	OrderDate     time.Time       `json:"order_date"`
	Billing       BillingDetails  `json:"billing_details" gorm:"embedded;embeddedPrefix:billing_"`
	Shipping      ShippingDetails `json:"shipping_details" gorm:"embedded;embeddedPrefix:shipping_"`
	Items         []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
