package config

import (
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// SMTPConfig holds the mail transport settings. Email sending is considered
// enabled only when server, port, username and password are all present.
type SMTPConfig struct {
	Server    string
	Port      int
	Username  string
	Password  string
	FromEmail string // Optional: falls back to Username if not set
	FromName  string // Optional: falls back to a generic store name
}

// Enabled reports whether enough settings are present to dial the SMTP server.
func (c SMTPConfig) Enabled() bool {
	return c.Server != "" && c.Port != 0 && c.Username != "" && c.Password != ""
}

// TelegramConfig holds the admin chat-notification settings. An empty token or
// chat ID means the channel is disabled, which is a valid configuration.
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// Enabled reports whether the Telegram channel is configured.
func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// Config is the full application configuration, assembled from environment
// variables with sensible defaults.
type Config struct {
	AppPort     string
	DatabaseDSN string // Empty DSN selects the in-memory order store
	RabbitMQURL string // Empty URL disables order-event publishing

	SMTP     SMTPConfig
	Telegram TelegramConfig

	TaxRate          decimal.Decimal
	ShippingFlatRate decimal.Decimal
}

// Load reads configuration from environment variables via Viper.
func Load() Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SMTP_SERVER", "")
	viper.SetDefault("SMTP_PORT", 0)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM_EMAIL", "")
	viper.SetDefault("SMTP_FROM_NAME", "")
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_CHAT_ID", "")
	viper.SetDefault("TAX_RATE", "0")
	viper.SetDefault("SHIPPING_FLAT_RATE", "0")
	viper.AutomaticEnv()

	return Config{
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		SMTP: SMTPConfig{
			Server:    viper.GetString("SMTP_SERVER"),
			Port:      viper.GetInt("SMTP_PORT"),
			Username:  viper.GetString("SMTP_USERNAME"),
			Password:  viper.GetString("SMTP_PASSWORD"),
			FromEmail: viper.GetString("SMTP_FROM_EMAIL"),
			FromName:  viper.GetString("SMTP_FROM_NAME"),
		},
		Telegram: TelegramConfig{
			BotToken: viper.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:   viper.GetString("TELEGRAM_CHAT_ID"),
		},
		TaxRate:          parseRate("TAX_RATE", viper.GetString("TAX_RATE")),
		ShippingFlatRate: parseRate("SHIPPING_FLAT_RATE", viper.GetString("SHIPPING_FLAT_RATE")),
	}
}

// parseRate parses a decimal rate from its string form so currency math never
// passes through binary floating point. Invalid values fall back to zero.
func parseRate(key, value string) decimal.Decimal {
	rate, err := decimal.NewFromString(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using 0: %v", key, value, err)
		return decimal.Zero
	}
	if rate.IsNegative() {
		log.Printf("Negative %s value %q not allowed, using 0", key, value)
		return decimal.Zero
	}
	return rate
}
