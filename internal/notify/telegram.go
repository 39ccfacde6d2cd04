package notify

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"checkout/internal/config"
	"checkout/internal/models"
	"checkout/internal/pricing"
)

// TelegramNotifier pings the store admin with a new-order summary via a
// Telegram bot. Missing credentials make the channel a no-op, not an error.
type TelegramNotifier struct {
	cfg config.TelegramConfig

	// newBot is swapped out in tests to avoid the API handshake that
	// tgbotapi.NewBotAPI performs.
	newBot func(token string) (botSender, error)
}

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewTelegramNotifier creates a new TelegramNotifier from bot settings.
func NewTelegramNotifier(cfg config.TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		cfg: cfg,
		newBot: func(token string) (botSender, error) {
			return tgbotapi.NewBotAPI(token)
		},
	}
}

// SendOrderConfirmation posts the order summary to the configured admin chat.
func (n *TelegramNotifier) SendOrderConfirmation(order *models.Order, totals pricing.Totals) error {
	if !n.cfg.Enabled() {
		log.Printf("Telegram notification skipped for order %s: bot token or chat ID not configured", order.OrderNumber)
		return nil
	}

	chatID, err := strconv.ParseInt(n.cfg.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid Telegram chat ID %q: %w", n.cfg.ChatID, err)
	}

	bot, err := n.newBot(n.cfg.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot client: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, messageText(order, totals))
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram notification for order %s: %w", order.OrderNumber, err)
	}
	return nil
}

func messageText(order *models.Order, totals pricing.Totals) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 New Order #%s!\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "👤 Name: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "✉️ Email: %s\n", order.CustomerEmail)
	fmt.Fprintf(&b, "📱 Phone: %s\n", order.Billing.Phone)
	fmt.Fprintf(&b, "🏠 Shipping Address: %s, %s\n\n", order.Shipping.Address, order.Shipping.City)
	b.WriteString("📦 Items Ordered: \n")

	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s - Qty: %d - $%s each\n",
			item.ProductName, item.Quantity, item.UnitPrice.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n💰 Subtotal: $%s", totals.Subtotal.StringFixed(2))
	if totals.Tax.IsPositive() {
		fmt.Fprintf(&b, "\n🧾 Tax: $%s", totals.Tax.StringFixed(2))
	}
	if totals.ShippingCost.IsPositive() {
		fmt.Fprintf(&b, "\n🚚 Shipping: $%s", totals.ShippingCost.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n💵 Total: $%s", totals.Total.StringFixed(2))
	return b.String()
}
