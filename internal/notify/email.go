package notify

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"

	"checkout/internal/config"
	"checkout/internal/models"
	"checkout/internal/pricing"
)

// EmailNotifier sends the customer an order confirmation over SMTP with a
// plain-text body and an HTML alternative.
type EmailNotifier struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

// NewEmailNotifier creates a new EmailNotifier from SMTP settings.
func NewEmailNotifier(cfg config.SMTPConfig) *EmailNotifier {
	n := &EmailNotifier{cfg: cfg}
	if cfg.Enabled() {
		n.dialer = gomail.NewDialer(cfg.Server, cfg.Port, cfg.Username, cfg.Password)
	}
	return n
}

// SendOrderConfirmation emails the confirmation to the order's customer.
// With SMTP unconfigured it logs and returns nil.
func (n *EmailNotifier) SendOrderConfirmation(order *models.Order, totals pricing.Totals) error {
	if n.dialer == nil {
		log.Printf("Email notification skipped for order %s: SMTP not configured", order.OrderNumber)
		return nil
	}

	fromEmail := n.cfg.FromEmail
	if fromEmail == "" {
		fromEmail = n.cfg.Username
	}
	fromName := n.cfg.FromName
	if fromName == "" {
		fromName = "Your Store"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(fromEmail, fromName))
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your Order Confirmation #%s", order.OrderNumber))
	m.SetBody("text/plain", plainTextBody(order, totals))
	m.AddAlternative("text/html", htmlBody(order, totals))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email for order %s: %w", order.OrderNumber, err)
	}
	return nil
}

func plainTextBody(order *models.Order, totals pricing.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order #%s!\n\n", order.OrderNumber)
	b.WriteString("Order Details:\n")
	fmt.Fprintf(&b, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", order.CustomerEmail)
	fmt.Fprintf(&b, "Shipping Address: %s, %s, %s\n\n",
		order.Shipping.Address, order.Shipping.City, order.Shipping.PostalCode)
	b.WriteString("Items:\n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s - Qty: %d - Price: $%s - Total: $%s\n",
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nSubtotal: $%s\n", totals.Subtotal.StringFixed(2))
	if totals.Tax.IsPositive() {
		fmt.Fprintf(&b, "Tax: $%s\n", totals.Tax.StringFixed(2))
	}
	if totals.ShippingCost.IsPositive() {
		fmt.Fprintf(&b, "Shipping: $%s\n", totals.ShippingCost.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s\n\n", totals.Total.StringFixed(2))
	b.WriteString("Thank you for shopping with us!")
	return b.String()
}

func htmlBody(order *models.Order, totals pricing.Totals) string {
	var b strings.Builder
	b.WriteString("<div style='font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;'>")
	fmt.Fprintf(&b, "<h2>Thank you for your order #%s!</h2>", order.OrderNumber)
	b.WriteString("<div style='background-color: #f8f9fa; padding: 15px; border-radius: 5px;'>")
	b.WriteString("<h3 style='margin-top: 0;'>Order Details</h3>")
	fmt.Fprintf(&b, "<p><strong>Customer:</strong> %s</p>", order.CustomerName)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", order.CustomerEmail)
	fmt.Fprintf(&b, "<p><strong>Shipping Address:</strong> %s, %s, %s</p>",
		order.Shipping.Address, order.Shipping.City, order.Shipping.PostalCode)
	b.WriteString("</div>")

	b.WriteString("<table style='width: 100%; border-collapse: collapse;'>")
	b.WriteString("<thead><tr>" +
		"<th style='text-align: left; padding: 8px;'>Product</th>" +
		"<th style='text-align: center; padding: 8px;'>Quantity</th>" +
		"<th style='text-align: right; padding: 8px;'>Price</th>" +
		"<th style='text-align: right; padding: 8px;'>Total</th>" +
		"</tr></thead><tbody>")

	for _, item := range order.Items {
		name := item.ProductName
		if item.Color != "" {
			name = fmt.Sprintf("%s (Color: %s)", name, item.Color)
		}
		fmt.Fprintf(&b, "<tr>"+
			"<td style='text-align: left; padding: 8px;'>%s</td>"+
			"<td style='text-align: center; padding: 8px;'>%d</td>"+
			"<td style='text-align: right; padding: 8px;'>$%s</td>"+
			"<td style='text-align: right; padding: 8px;'>$%s</td>"+
			"</tr>",
			name, item.Quantity, item.UnitPrice.StringFixed(2), item.LineTotal.StringFixed(2))
	}

	b.WriteString("</tbody><tfoot>")
	fmt.Fprintf(&b, "<tr><td colspan='3' style='text-align: right; padding: 8px;'><strong>Subtotal:</strong></td><td style='text-align: right; padding: 8px;'>$%s</td></tr>", totals.Subtotal.StringFixed(2))
	if totals.Tax.IsPositive() {
		fmt.Fprintf(&b, "<tr><td colspan='3' style='text-align: right; padding: 8px;'><strong>Tax:</strong></td><td style='text-align: right; padding: 8px;'>$%s</td></tr>", totals.Tax.StringFixed(2))
	}
	if totals.ShippingCost.IsPositive() {
		fmt.Fprintf(&b, "<tr><td colspan='3' style='text-align: right; padding: 8px;'><strong>Shipping:</strong></td><td style='text-align: right; padding: 8px;'>$%s</td></tr>", totals.ShippingCost.StringFixed(2))
	}
	fmt.Fprintf(&b, "<tr><td colspan='3' style='text-align: right; padding: 8px;'><strong>Total:</strong></td><td style='text-align: right; padding: 8px;'><strong>$%s</strong></td></tr>", totals.Total.StringFixed(2))
	b.WriteString("</tfoot></table>")

	b.WriteString("<p>Thank you for shopping with us!</p></div>")
	return b.String()
}
