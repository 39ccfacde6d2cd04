package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"checkout/internal/config"
	"checkout/internal/handlers"
	"checkout/internal/models"
	"checkout/internal/notify"
	"checkout/internal/pricing"
	"checkout/internal/repositories"
	"checkout/internal/services"
	"checkout/pkg/events"
)

func main() {
	cfg := config.Load()

	// --- Order Store ---
	// A configured DSN selects the database-backed store; without one the
	// in-memory store keeps the flow runnable for local development.
	var orderRepo repositories.OrderRepository
	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		orderRepo = repositories.NewGORMOrderRepository(db)
	} else {
		log.Println("No DATABASE_DSN configured, using in-memory order store")
		orderRepo = repositories.NewMemoryOrderRepository()
	}

	// --- Order Event Publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mq, err := events.NewPublisher(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ publisher: %v", err)
		}
		defer mq.Close()
		publisher = mq
	} else {
		log.Println("No RABBITMQ_URL configured, order event publishing disabled")
	}

	// --- Notification Channels ---
	// Both adapters degrade to logged no-ops when unconfigured.
	notifiers := []notify.Notifier{
		notify.NewEmailNotifier(cfg.SMTP),
		notify.NewTelegramNotifier(cfg.Telegram),
	}

	// --- Checkout Workflow ---
	calc := pricing.NewCalculator(cfg.TaxRate, cfg.ShippingFlatRate)
	checkoutService := services.NewCheckoutService(orderRepo, calc, notifiers, publisher)

	// --- HTTP Layer ---
	sessionStore := session.New()
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, sessionStore)

	app := fiber.New()
	app.Use(logger.New())

	checkoutHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
